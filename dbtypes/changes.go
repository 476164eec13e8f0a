package dbtypes

import (
	"encoding/json"
	"fmt"
)

// Operation is the kind of change applied to a table row.
type Operation int32

const (
	OperationUnset  Operation = 0
	OperationCreate Operation = 1
	OperationUpdate Operation = 2
	OperationDelete Operation = 3
)

var operationNames = map[Operation]string{
	OperationUnset:  "UNSET",
	OperationCreate: "CREATE",
	OperationUpdate: "UPDATE",
	OperationDelete: "DELETE",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OPERATION_%d", int32(o))
}

func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		var code int32
		if err := json.Unmarshal(data, &code); err != nil {
			return fmt.Errorf("invalid operation %s", string(data))
		}
		*o = Operation(code)
		return nil
	}

	for op, opName := range operationNames {
		if opName == name {
			*o = op
			return nil
		}
	}
	return fmt.Errorf("unknown operation %q", name)
}

// Field is one column change. OldValue stays empty for creates.
type Field struct {
	Name     string `json:"name"`
	NewValue string `json:"new_value"`
	OldValue string `json:"old_value"`
}

// TableChange is one keyed row change.
type TableChange struct {
	Table       string            `json:"table"`
	CompositePK map[string]string `json:"composite_pk"`
	Ordinal     uint64            `json:"ordinal"`
	Operation   Operation         `json:"operation"`
	Fields      []*Field          `json:"fields"`
}

// DatabaseChanges is an ordered list of row changes for bulk loading.
type DatabaseChanges struct {
	TableChanges []*TableChange `json:"table_changes"`
}

// PushCreate appends a create change for the row and returns it.
func (c *DatabaseChanges) PushCreate(table string, pk map[string]string, ordinal uint64) *TableChange {
	change := &TableChange{
		Table:       table,
		CompositePK: pk,
		Ordinal:     ordinal,
		Operation:   OperationCreate,
		Fields:      []*Field{},
	}
	c.TableChanges = append(c.TableChanges, change)
	return change
}

// Change sets a column value on the row change.
func (t *TableChange) Change(name string, newValue string) *TableChange {
	t.Fields = append(t.Fields, &Field{
		Name:     name,
		NewValue: newValue,
	})
	return t
}
