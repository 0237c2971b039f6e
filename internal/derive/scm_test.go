package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		url      string
		provider domain.Provider
		org      string
		name     string
	}{
		{"https://github.com/acme/widget.git", domain.ProviderGitHub, "acme", "widget"},
		{"https://github.com/acme/widget", domain.ProviderGitHub, "acme", "widget"},
		{"git@github.com:acme/widget.git", domain.ProviderGitHub, "acme", "widget"},
		{"https://github.company.com/Platform/Widget/tree/main", domain.ProviderGitHub, "Platform", "Widget"},
		{"https://git.enterprise.internal/gitlab/acme/widget", domain.ProviderGitLab, "acme", "widget"},
		{"https://gitlab.com/acme/widget.git", domain.ProviderGitLab, "acme", "widget"},
		{"https://bitbucket.org/acme/widget", domain.ProviderBitbucket, "acme", "widget"},
		{"https://dev.azure.com/acme/widget/_git/widget", domain.ProviderAzureDevOps, "", ""},
		{"https://acme.visualstudio.com/widget/_git/widget", domain.ProviderAzureDevOps, "", ""},
		{"https://git.example.org/acme/widget.git", domain.ProviderOther, "", ""},
		{"https://github.com/acme", domain.ProviderGitHub, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			repo := ParseRepository(tt.url)
			assert.Equal(t, tt.url, repo.URL)
			assert.Equal(t, tt.provider, repo.Provider)
			assert.Equal(t, tt.org, repo.Organization)
			assert.Equal(t, tt.name, repo.Name)
		})
	}
}

func TestDetectProviderPriority(t *testing.T) {
	// github is tested before gitlab
	assert.Equal(t, domain.ProviderGitHub, DetectProvider("https://gitlab.example.com/github-mirror/x"))
	assert.Equal(t, domain.ProviderGitLab, DetectProvider("HTTPS://GITLAB.COM/ACME/WIDGET"))
}

func TestSCMURL(t *testing.T) {
	links := []domain.ProjectLink{
		{Type: domain.LinkTypeHomepage, URL: "https://github.com/acme/site"},
		{Type: domain.LinkTypeCI, URL: "https://ci.example.com"},
		{Type: domain.LinkTypeSources, URL: "https://gitlab.com/acme/widget"},
	}
	assert.Equal(t, "https://gitlab.com/acme/widget", SCMURL(links))

	assert.Empty(t, SCMURL([]domain.ProjectLink{{Type: domain.LinkTypeHomepage, URL: "https://github.com/acme/site"}}))
	assert.Empty(t, SCMURL(nil))
}
