// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each concrete backend, which register
// their factories with the storage package. After
//
//	import _ "shelf/internal/storage/all"
//
// the following kinds are available to storage.New and orm.Open:
//
//   - "sqlite"   (shelf/internal/storage/sqlite)
//   - "postgres" (shelf/internal/storage/postgres)
//   - "mysql"    (shelf/internal/storage/mysql)
//   - "mssql"    (shelf/internal/storage/mssql)
//
// A binary that needs only a subset of backends can blank-import the
// individual packages instead.
package all

import (
	_ "shelf/internal/storage/mssql"
	_ "shelf/internal/storage/mysql"
	_ "shelf/internal/storage/postgres"
	_ "shelf/internal/storage/sqlite"
)
