package deploy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"buildflow/internal/fault"
	"buildflow/internal/store"
)

const defaultProjectName = "BuildFlow Project"

// MetadataStore is the slice of the diagram store the deploy flow uses.
type MetadataStore interface {
	Project(ctx context.Context, projectID string) (store.ProjectRow, error)
	SaveDeployment(ctx context.Context, projectID string, metadata any) error
	Deployment(ctx context.Context, projectID string) (json.RawMessage, error)
}

// CloudAPI is the Railway surface the deployment sequence needs.
type CloudAPI interface {
	CreateProject(ctx context.Context, name string) (RailwayProject, error)
	CreateService(ctx context.Context, projectID, name string) (RailwayService, error)
	CreateDatabase(ctx context.Context, projectID, name, plugin string) (RailwayService, error)
	SetServiceVariables(ctx context.Context, serviceID string, vars map[string]string) error
}

type Service struct {
	store   MetadataStore // nil when Supabase is unconfigured
	railway func(token string) CloudAPI
	log     *zap.Logger
}

func New(metadata MetadataStore, railway func(token string) CloudAPI, log *zap.Logger) *Service {
	if railway == nil {
		railway = func(token string) CloudAPI { return NewRailwayClient(token) }
	}
	return &Service{store: metadata, railway: railway, log: log}
}

type Request struct {
	ProjectID   string
	CloudToken  string
	ProjectName string
}

// Resource is one deployed service or database in the result summary.
type Resource struct {
	NodeID    string `json:"nodeId"`
	RailwayID string `json:"railwayId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	NeedsCode bool   `json:"needsCode,omitempty"`
}

type Result struct {
	Success                bool       `json:"success"`
	DeployedProjectID      string     `json:"deployedProjectId"`
	DeployedProjectName    string     `json:"deployedProjectName"`
	DeployedServicesCount  int        `json:"deployedServicesCount"`
	DeployedDatabasesCount int        `json:"deployedDatabasesCount"`
	Services               []Resource `json:"services"`
	Databases              []Resource `json:"databases"`
	Errors                 []string   `json:"errors"`
	Message                string     `json:"message"`
}

// Metadata is what gets persisted onto the project row after a deployment.
type Metadata struct {
	ProjectID          string     `json:"projectId"`
	RailwayProjectID   string     `json:"railwayProjectId"`
	RailwayProjectName string     `json:"railwayProjectName"`
	Services           []Resource `json:"services"`
	Databases          []Resource `json:"databases"`
	Status             string     `json:"status"`
	Errors             []string   `json:"errors"`
	Config             Config     `json:"config"`
}

type Status struct {
	Deployed bool            `json:"deployed"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// Deploy provisions the diagram's resources on Railway. Databases go first
// because services may reference them; per-resource failures accumulate
// into the result instead of aborting the run.
func (s *Service) Deploy(ctx context.Context, req Request) (Result, error) {
	if _, err := uuid.Parse(req.ProjectID); err != nil {
		return Result{}, fault.Newf(fault.BadRequest, "Invalid projectId format: %s", req.ProjectID)
	}
	if s.store == nil {
		return Result{}, fault.New(fault.ServiceUnavailable, "Supabase is not configured")
	}

	project, err := s.store.Project(ctx, req.ProjectID)
	if err != nil {
		return Result{}, err
	}
	if len(project.Diagram.Nodes) == 0 {
		return Result{}, fault.New(fault.BadRequest, "Diagram has no nodes to deploy")
	}

	name := req.ProjectName
	if name == "" {
		name = project.Name
	}
	if name == "" {
		name = defaultProjectName
	}

	cfg := MapDiagram(project.Diagram, name)
	cloud := s.railway(req.CloudToken)

	railwayProject, err := cloud.CreateProject(ctx, cfg.ProjectName)
	if err != nil {
		return Result{}, fault.Wrap(fault.Internal, err, "Failed to create Railway project: "+err.Error())
	}
	if railwayProject.ID == "" {
		return Result{}, fault.New(fault.Internal, "Failed to create Railway project")
	}

	databases := []Resource{}
	services := []Resource{}
	errs := []string{}

	for _, db := range cfg.Databases {
		created, err := cloud.CreateDatabase(ctx, railwayProject.ID, db.Name, db.Plugin)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Failed to create database %s: %v", db.Name, err))
			continue
		}
		databases = append(databases, Resource{
			NodeID:    db.NodeID,
			RailwayID: created.ID,
			Name:      db.Name,
			Type:      "database",
		})
	}

	for _, svc := range cfg.Services {
		created, err := cloud.CreateService(ctx, railwayProject.ID, svc.Name)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Failed to create service %s: %v", svc.Name, err))
			continue
		}
		if created.ID != "" && len(svc.EnvironmentVariables) > 0 {
			if err := cloud.SetServiceVariables(ctx, created.ID, svc.EnvironmentVariables); err != nil {
				s.log.Warn("failed to set service variables",
					zap.String("service", svc.Name), zap.Error(err))
			}
		}
		services = append(services, Resource{
			NodeID:    svc.NodeID,
			RailwayID: created.ID,
			Name:      svc.Name,
			Type:      "service",
			NeedsCode: svc.NeedsCode,
		})
	}

	status := "deployed"
	if len(errs) > 0 {
		status = "partial"
	}
	metadata := Metadata{
		ProjectID:          req.ProjectID,
		RailwayProjectID:   railwayProject.ID,
		RailwayProjectName: cfg.ProjectName,
		Services:           services,
		Databases:          databases,
		Status:             status,
		Errors:             errs,
		Config:             cfg,
	}
	// Best effort: the deployment already happened, a metadata write
	// failure must not fail the request.
	if err := s.store.SaveDeployment(ctx, req.ProjectID, metadata); err != nil {
		s.log.Warn("failed to store deployment metadata",
			zap.String("project_id", req.ProjectID), zap.Error(err))
	}

	return Result{
		Success:                true,
		DeployedProjectID:      railwayProject.ID,
		DeployedProjectName:    cfg.ProjectName,
		DeployedServicesCount:  len(services),
		DeployedDatabasesCount: len(databases),
		Services:               services,
		Databases:              databases,
		Errors:                 errs,
		Message:                fmt.Sprintf("Deployed %d services and %d databases to Railway", len(services), len(databases)),
	}, nil
}

// DeploymentStatus reports whether the project has stored deployment
// metadata.
func (s *Service) DeploymentStatus(ctx context.Context, projectID string) (Status, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return Status{}, fault.New(fault.BadRequest, "Invalid projectId format")
	}
	if s.store == nil {
		return Status{}, fault.New(fault.ServiceUnavailable, "Supabase is not configured")
	}
	metadata, err := s.store.Deployment(ctx, projectID)
	if err != nil {
		return Status{}, err
	}
	if metadata == nil {
		return Status{Deployed: false, Message: "No deployment found for this project"}, nil
	}
	return Status{Deployed: true, Metadata: metadata}, nil
}
