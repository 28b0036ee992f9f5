// Package configs embeds the default game data shipped with the binary.
package configs

import _ "embed"

// TasksSchemaFile is the name the task schema is registered under
const TasksSchemaFile = "schemas/tasks.schema.json"

//go:embed tasks.json
var Tasks []byte

//go:embed schemas/tasks.schema.json
var TasksSchema []byte

//go:embed balance.yaml
var Balance []byte
