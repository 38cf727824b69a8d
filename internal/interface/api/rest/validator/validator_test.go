package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/interface/api/rest/dto/auth"
)

func TestParseFileID(t *testing.T) {
	tests := []struct {
		in      string
		want    file.ID
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: " 42 ", want: 42},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFileID(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFileID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name     string
		req      auth.LoginRequest
		wantKeys []string
	}{
		{name: "valid", req: auth.LoginRequest{Email: "ann@example.com", Password: "secret"}},
		{name: "empty", req: auth.LoginRequest{}, wantKeys: []string{"email", "password"}},
		{name: "bad email", req: auth.LoginRequest{Email: "nope", Password: "secret"}, wantKeys: []string{"email"}},
		{name: "blank password", req: auth.LoginRequest{Email: "ann@example.com", Password: "   "}, wantKeys: []string{"password"}},
		{
			name:     "too long password",
			req:      auth.LoginRequest{Email: "ann@example.com", Password: strings.Repeat("x", 73)},
			wantKeys: []string{"password"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLogin(tt.req)
			if len(tt.wantKeys) == 0 {
				assert.Nil(t, errs)
				return
			}
			require.Len(t, errs, len(tt.wantKeys))
			for _, k := range tt.wantKeys {
				assert.Contains(t, errs, k)
			}
		})
	}
}
