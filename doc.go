// Package drill is a Pure Go client for the Apache Drill REST API.
//
// It handles the authentication bootstrap against the Drill web server,
// schema and object discovery, SQL execution, and conversion of the
// epoch-millisecond DATE/TIME/TIMESTAMP values Drill returns into native
// time.Time values, including sentinel high dates such as 9999-12-31.
//
// A driver for the database/sql package is also provided via the driver
// subpackage. This can be used like so:
//
//   import (
//     "database/sql"
//
//     _ "github.com/factset/go-drill-rest/driver"
//   )
//
//   func main() {
//     props := []string{
//       "host=drillbit1,drillbit2",
//       "user=<username>",
//       "pass=<password>",
//       "schema=ora.BLUE",
//     }
//
//     db, err := sql.Open("drill-rest", strings.Join(props, ";"))
//  }
package drill
