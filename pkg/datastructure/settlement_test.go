package datastructure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSettlements(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []Settlement
		wantErr error
	}{
		{
			name: "objects",
			data: `[{"name": "Pezinok", "district": "Pezinok"}, {"name": "Čierna nad Tisou"}]`,
			want: []Settlement{{Name: "Pezinok"}, {Name: "Čierna nad Tisou"}},
		},
		{
			name: "bare strings",
			data: ` ["Čierna", "Čierne"] `,
			want: []Settlement{{Name: "Čierna"}, {Name: "Čierne"}},
		},
		{
			name: "empty list",
			data: `[]`,
			want: []Settlement{},
		},
		{
			name:    "not a list",
			data:    `{"name": "Pezinok"}`,
			wantErr: ErrNotAList,
		},
		{
			name:    "broken json",
			data:    `[{"name": "Pezinok"`,
			wantErr: ErrNotAList,
		},
		{
			name:    "object without name",
			data:    `[{"title": "Pezinok"}]`,
			wantErr: ErrMissingName,
		},
		{
			name:    "name is not a string",
			data:    `[{"name": 42}]`,
			wantErr: ErrMissingName,
		},
		{
			name:    "number entry",
			data:    `["Pezinok", 7]`,
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "empty string entry",
			data:    `[""]`,
			wantErr: ErrMissingName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSettlements([]byte(tt.data))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"Čierna", "Čierne"}, Names([]Settlement{{Name: "Čierna"}, {Name: "Čierne"}}))
}
