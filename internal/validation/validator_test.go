package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	RepID   string `validate:"required,custom_id"`
	DateKey string `validate:"required,date_key"`
	Day     int    `validate:"min=0,max=6"`
}

func TestValidateStruct(t *testing.T) {
	testCases := []struct {
		name    string
		input   sampleRequest
		wantErr bool
	}{
		{
			name:  "valid request",
			input: sampleRequest{RepID: "rep-1", DateKey: "2024-03-05", Day: 3},
		},
		{
			name:    "missing rep id",
			input:   sampleRequest{DateKey: "2024-03-05", Day: 0},
			wantErr: true,
		},
		{
			name:    "rep id with illegal characters",
			input:   sampleRequest{RepID: "rep 1!", DateKey: "2024-03-05", Day: 0},
			wantErr: true,
		},
		{
			name:    "malformed date key",
			input:   sampleRequest{RepID: "rep-1", DateKey: "05.03.2024", Day: 0},
			wantErr: true,
		},
		{
			name:    "day out of range",
			input:   sampleRequest{RepID: "rep-1", DateKey: "2024-03-05", Day: 9},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.input)

			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}
