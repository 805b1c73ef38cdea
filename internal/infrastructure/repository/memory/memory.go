// Package memory provides in-process repositories used when the service
// runs without a database, and as test doubles for the use case layer.
package memory

import "fmt"

func errNotFound(kind string, id int64) error {
	return fmt.Errorf("%s %d not found in memory store", kind, id)
}
