package domain

import "time"

// Provider identifies the hosting platform of a source repository
type Provider string

const (
	ProviderGitHub      Provider = "github"
	ProviderGitLab      Provider = "gitlab"
	ProviderBitbucket   Provider = "bitbucket"
	ProviderAzureDevOps Provider = "azure_devops"
	ProviderOther       Provider = "other"
)

// Link types reported by the project links endpoint
const (
	LinkTypeHomepage = "homepage"
	LinkTypeCI       = "ci"
	LinkTypeIssue    = "issue"
	LinkTypeSCM      = "scm"
	LinkTypeSources  = "sources"
)

// ProjectLink is a raw link attached to a project
type ProjectLink struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
}

// Branch represents an analyzed branch of a project
type Branch struct {
	Name         string     `json:"name"`
	IsMain       bool       `json:"isMain"`
	Type         string     `json:"type,omitempty"`
	AnalysisDate *time.Time `json:"analysisDate,omitempty"`
}

// ProjectLinks is the typed view of a project's links
type ProjectLinks struct {
	Homepage     string `json:"homepage,omitempty"`
	CI           string `json:"ci,omitempty"`
	IssueTracker string `json:"issueTracker,omitempty"`
	SCM          string `json:"scm,omitempty"`
}

// Repository is the source repository derived from the project's SCM link
type Repository struct {
	URL          string   `json:"url"`
	Provider     Provider `json:"provider"`
	Organization string   `json:"organization,omitempty"`
	Name         string   `json:"name,omitempty"`
	MainBranch   string   `json:"mainBranch,omitempty"`
	Branches     []string `json:"branches,omitempty"`
}

// ALMIntegration links a project to an external DevOps platform
type ALMIntegration struct {
	Provider   string `json:"provider"`
	URL        string `json:"url,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

// RepositoryInfo represents everything known about where a project's code lives.
// Every block except the project identity is optional and nil when its source
// was unavailable.
type RepositoryInfo struct {
	ProjectKey  string          `json:"projectKey"`
	ProjectName string          `json:"projectName"`
	Repository  *Repository     `json:"repository,omitempty"`
	Links       *ProjectLinks   `json:"links,omitempty"`
	ALM         *ALMIntegration `json:"alm,omitempty"`
}
