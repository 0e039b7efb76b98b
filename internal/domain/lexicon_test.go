package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMorphologicalEntry_Distributive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
		want   bool
	}{
		{name: "boolean true", config: `{"pre":{"distributive":true}}`, want: true},
		{name: "string flag", config: `{"pre":{"distributive":"true"}}`, want: true},
		{name: "numeric flag", config: `{"pre":{"distributive":1}}`, want: true},
		{name: "boolean false", config: `{"pre":{"distributive":false}}`, want: false},
		{name: "zero", config: `{"pre":{"distributive":0}}`, want: false},
		{name: "empty string", config: `{"pre":{"distributive":""}}`, want: false},
		{name: "absent", config: `{"pre":{}}`, want: false},
		{name: "no prefix block", config: `{}`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var cfg Attributes
			require.NoError(t, json.Unmarshal([]byte(tt.config), &cfg))
			e := MorphologicalEntry{Config: cfg}
			assert.Equal(t, tt.want, e.Distributive())
		})
	}
}
