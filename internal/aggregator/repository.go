package aggregator

import (
	"context"
	"sync"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/collector"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/derive"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/domain"
	apperrors "github.com/kurihiro0119/sonar-quality-mcp/internal/errors"
)

// GetRepositoryInfo retrieves where the code of a project lives.
//
// The project lookup is required. Links, branches and the ALM binding are
// fetched concurrently; a failure in any of them is logged and leaves the
// matching block nil.
func (a *aggregator) GetRepositoryInfo(ctx context.Context, q RepositoryQuery) (*domain.RepositoryInfo, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	page, err := a.collector.SearchProjects(ctx, collector.ProjectSearchOptions{
		Organization: a.organization(q.Organization),
		Projects:     []string{q.ProjectKey},
	})
	if err != nil {
		return nil, err
	}
	project := findProject(page, q.ProjectKey)
	if project == nil {
		return nil, apperrors.NewNotFoundError("project " + q.ProjectKey)
	}

	var (
		wg       sync.WaitGroup
		links    []domain.ProjectLink
		branches []domain.Branch
		alm      *domain.ALMIntegration
		linksOK  bool
		branchOK bool
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		l, err := a.collector.GetProjectLinks(ctx, q.ProjectKey)
		if err != nil {
			a.log.Warnw("project links unavailable", "project", q.ProjectKey, "error", err)
			return
		}
		links, linksOK = l, true
	}()
	go func() {
		defer wg.Done()
		b, err := a.collector.ListBranches(ctx, q.ProjectKey)
		if err != nil {
			a.log.Warnw("branches unavailable", "project", q.ProjectKey, "error", err)
			return
		}
		branches, branchOK = b, true
	}()
	go func() {
		defer wg.Done()
		integration, err := a.collector.GetALMIntegration(ctx, q.ProjectKey)
		if err != nil {
			a.log.Warnw("ALM integration unavailable", "project", q.ProjectKey, "error", err)
			return
		}
		alm = integration
	}()
	wg.Wait()

	info := &domain.RepositoryInfo{
		ProjectKey:  project.Key,
		ProjectName: project.Name,
		ALM:         alm,
	}
	if linksOK && len(links) > 0 {
		info.Links = typedLinks(links)
	}
	if scm := derive.SCMURL(links); scm != "" {
		repo := derive.ParseRepository(scm)
		if branchOK {
			applyBranches(&repo, branches)
		}
		info.Repository = &repo
	}
	return info, nil
}

func findProject(page *domain.ProjectPage, key string) *domain.Project {
	if page == nil {
		return nil
	}
	for i := range page.Projects {
		if page.Projects[i].Key == key {
			return &page.Projects[i]
		}
	}
	return nil
}

// typedLinks keeps the first link of each known type
func typedLinks(links []domain.ProjectLink) *domain.ProjectLinks {
	out := &domain.ProjectLinks{}
	for _, l := range links {
		var dst *string
		switch l.Type {
		case domain.LinkTypeHomepage:
			dst = &out.Homepage
		case domain.LinkTypeCI:
			dst = &out.CI
		case domain.LinkTypeIssue:
			dst = &out.IssueTracker
		case domain.LinkTypeSCM, domain.LinkTypeSources:
			dst = &out.SCM
		default:
			continue
		}
		if *dst == "" {
			*dst = l.URL
		}
	}
	return out
}

func applyBranches(repo *domain.Repository, branches []domain.Branch) {
	for _, b := range branches {
		repo.Branches = append(repo.Branches, b.Name)
		if b.IsMain {
			repo.MainBranch = b.Name
		}
	}
}
