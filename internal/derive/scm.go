package derive

import (
	"regexp"
	"strings"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
)

// Host fragments are matched as plain substrings so self-hosted variants
// (github.company.com, a /gitlab/ path prefix) are still recognized.
var ownerRepoPatterns = map[domain.Provider]*regexp.Regexp{
	domain.ProviderGitHub:    regexp.MustCompile(`(?i)github[^/:]*[/:]([^/]+)/([^/]+?)(?:\.git)?(?:[/?#]|$)`),
	domain.ProviderGitLab:    regexp.MustCompile(`(?i)gitlab[^/:]*[/:]([^/]+)/([^/]+?)(?:\.git)?(?:[/?#]|$)`),
	domain.ProviderBitbucket: regexp.MustCompile(`(?i)bitbucket[^/:]*[/:]([^/]+)/([^/]+?)(?:\.git)?(?:[/?#]|$)`),
}

// DetectProvider classifies an SCM URL by host fragment. The first match in
// the order github, gitlab, bitbucket, azure wins.
func DetectProvider(rawURL string) domain.Provider {
	u := strings.ToLower(rawURL)
	switch {
	case strings.Contains(u, "github"):
		return domain.ProviderGitHub
	case strings.Contains(u, "gitlab"):
		return domain.ProviderGitLab
	case strings.Contains(u, "bitbucket"):
		return domain.ProviderBitbucket
	case strings.Contains(u, "dev.azure.com"), strings.Contains(u, "visualstudio.com"):
		return domain.ProviderAzureDevOps
	default:
		return domain.ProviderOther
	}
}

// ParseRepository derives the provider, organization and name of the
// repository at rawURL. Organization and name stay empty when the path does not
// follow {organization}/{name} right after the host fragment; Azure DevOps URLs
// are never split.
func ParseRepository(rawURL string) domain.Repository {
	repo := domain.Repository{
		URL:      rawURL,
		Provider: DetectProvider(rawURL),
	}

	pattern, ok := ownerRepoPatterns[repo.Provider]
	if !ok {
		return repo
	}
	if m := pattern.FindStringSubmatch(rawURL); m != nil {
		repo.Organization = m[1]
		repo.Name = m[2]
	}
	return repo
}

// SCMURL picks the repository URL from a project's links. Only scm and
// sources links are considered.
func SCMURL(links []domain.ProjectLink) string {
	for _, l := range links {
		if l.URL == "" {
			continue
		}
		if l.Type == domain.LinkTypeSCM || l.Type == domain.LinkTypeSources {
			return l.URL
		}
	}
	return ""
}
