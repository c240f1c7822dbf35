package gitutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codemaster-gdg/codementor/internal/core"
)

func TestValidateRepoURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "Valid HTTPS URL",
			url:  "https://github.com/octocat/hello-world",
			want: "https://github.com/octocat/hello-world",
		},
		{
			name: "Trailing slash",
			url:  "https://github.com/octocat/hello-world/",
			want: "https://github.com/octocat/hello-world",
		},
		{
			name: "Dot-git suffix",
			url:  "https://github.com/octocat/hello-world.git",
			want: "https://github.com/octocat/hello-world",
		},
		{
			name: "Surrounding whitespace",
			url:  "  https://github.com/octocat/hello-world  ",
			want: "https://github.com/octocat/hello-world",
		},
		{
			name:    "Not a URL at all",
			url:     "not-a-url",
			wantErr: true,
		},
		{
			name:    "Wrong host",
			url:     "https://gitlab.com/octocat/hello-world",
			wantErr: true,
		},
		{
			name:    "HTTP scheme",
			url:     "http://github.com/octocat/hello-world",
			wantErr: true,
		},
		{
			name:    "Missing repository segment",
			url:     "https://github.com/octocat",
			wantErr: true,
		},
		{
			name:    "Extra path segments",
			url:     "https://github.com/octocat/hello-world/tree/main",
			wantErr: true,
		},
		{
			name:    "Empty string",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRepoURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrInvalidRepoURL))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
