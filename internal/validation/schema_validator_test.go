package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GibLife_Go/configs"
)

func newTaskValidator(t *testing.T) SchemaValidator {
	t.Helper()
	v := NewSchemaValidator()
	require.NoError(t, v.RegisterSchema(configs.TasksSchemaFile, configs.TasksSchema))
	return v
}

func TestSchemaValidator_TaskCatalog(t *testing.T) {
	v := newTaskValidator(t)

	tests := []struct {
		name    string
		data    string
		want    []Violation
		wantErr string
	}{
		{
			name: "embedded default catalog",
			data: string(configs.Tasks),
		},
		{
			name: "requirements are optional",
			data: `{"version": "1.0", "tasks": [{"title": "Fix CSS Bug", "reward": 50}]}`,
		},
		{
			name: "empty task list",
			data: `{"version": "1.0", "tasks": []}`,
			want: []Violation{{Path: "/tasks", Keyword: "minItems"}},
		},
		{
			name: "zero reward",
			data: `{"version": "1.0", "tasks": [{"title": "Free Work", "reward": 0}]}`,
			want: []Violation{{Path: "/tasks/0/reward", Keyword: "minimum"}},
		},
		{
			name: "unknown skill",
			data: `{"version": "1.0", "tasks": [{"title": "Cook", "reward": 5, "required_skill": "cooking"}]}`,
			want: []Violation{{Path: "/tasks/0/required_skill", Keyword: "enum"}},
		},
		{
			name: "level below one",
			data: `{"version": "1.0", "tasks": [{"title": "Cook", "reward": 5, "required_level": 0}]}`,
			want: []Violation{{Path: "/tasks/0/required_level", Keyword: "minimum"}},
		},
		{
			name: "missing title",
			data: `{"version": "1.0", "tasks": [{"reward": 5}]}`,
			want: []Violation{{Path: "/tasks/0", Keyword: "required"}},
		},
		{
			name:    "invalid JSON",
			data:    `{"version": "1.0", "tasks": [}`,
			wantErr: "parse JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), configs.TasksSchemaFile)
			switch {
			case tt.wantErr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			case tt.want != nil:
				var verr *Error
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, configs.TasksSchemaFile, verr.Schema)
				assert.Equal(t, tt.want, verr.Violations)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchemaValidator_ViolationsAreSortedAndCapped(t *testing.T) {
	v := newTaskValidator(t)

	tasks := make([]string, maxViolations+3)
	for i := range tasks {
		tasks[i] = fmt.Sprintf(`{"title": "T%d", "reward": 0}`, i)
	}
	data := `{"version": "1.0", "tasks": [` + strings.Join(tasks, ",") + `]}`

	err := v.ValidateBytes([]byte(data), configs.TasksSchemaFile)
	var verr *Error
	require.ErrorAs(t, err, &verr)

	assert.Len(t, verr.Violations, maxViolations)
	assert.Equal(t, 3, verr.Truncated)
	assert.Equal(t, "/tasks/0/reward", verr.Violations[0].Path)
	assert.Contains(t, err.Error(), "(and 3 more)")
}

func TestSchemaValidator_RegisterSchemaKeepsFirst(t *testing.T) {
	v := NewSchemaValidator().(*registry)

	require.NoError(t, v.RegisterSchema("catalog", configs.TasksSchema))
	require.NoError(t, v.RegisterSchema("catalog", []byte(`{"type": "string"}`)))

	assert.Len(t, v.schemas, 1)
	assert.NoError(t, v.ValidateBytes(configs.Tasks, "catalog"))
}

func TestSchemaValidator_RegisterSchemaRejectsBadJSON(t *testing.T) {
	v := NewSchemaValidator()

	err := v.RegisterSchema("broken", []byte(`{"type": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse schema broken")
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "nonexistent.schema.json")
	assert.ErrorIs(t, err, ErrUnknownSchema)
}
