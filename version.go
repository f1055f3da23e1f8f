package dss

import "fmt"

// Version is the engine release version.
const Version = "1.1.0"

// StartupScript returns the script frontends submit to a fresh executor
// before user input; it defines the __VERSION__ alias so scripts can
// report the engine version.
func StartupScript() string {
	return fmt.Sprintf("alias_def __VERSION__ %s", Version)
}
