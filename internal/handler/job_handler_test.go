package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalaryInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want SalaryInput
	}{
		{name: "string", body: `{"salary":"50000"}`, want: "50000"},
		{name: "number", body: `{"salary":50000}`, want: "50000"},
		{name: "negative number", body: `{"salary":-5}`, want: "-5"},
		{name: "fraction", body: `{"salary":1.25}`, want: "1.25"},
		{name: "free text", body: `{"salary":"abc"}`, want: "abc"},
		{name: "null", body: `{"salary":null}`, want: ""},
		{name: "boolean", body: `{"salary":false}`, want: ""},
		{name: "object", body: `{"salary":{"amount":1}}`, want: ""},
		{name: "missing", body: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req JobRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Salary)
		})
	}
}
