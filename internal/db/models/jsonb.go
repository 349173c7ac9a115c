package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice is a string list stored as a JSONB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// UintSlice is an id list stored as a JSONB column.
type UintSlice []uint

// Value implements the driver.Valuer interface
func (u UintSlice) Value() (driver.Value, error) {
	if u == nil {
		return nil, nil
	}
	return json.Marshal(u)
}

// Scan implements the sql.Scanner interface
func (u *UintSlice) Scan(value interface{}) error {
	return scanJSON(value, u)
}

// Contains reports whether id is present in the slice.
func (u UintSlice) Contains(id uint) bool {
	for _, v := range u {
		if v == id {
			return true
		}
	}
	return false
}

// scanJSON decodes a JSONB column value into dst. SQLite hands back strings
// where Postgres hands back []byte, so both are accepted.
func scanJSON(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
	return json.Unmarshal(bytes, dst)
}
