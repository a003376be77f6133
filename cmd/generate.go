package main

//go:generate echo "Generating SQLC files..."
//go:generate bash -c "export PATH=$$PATH:~/go/bin && sqlc generate -f ../storage/sqlc.yaml"
//go:generate echo "SQLC files generated"

// Views are templ components built from embedded html/template files, so
// only the SQLC queries need generating. From the project root run:
//
// go generate ./...
