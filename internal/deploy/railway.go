package deploy

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"
)

const railwayAPIURL = "https://backboard.railway.com/graphql/v2"

// RailwayProject, RailwayService, and RailwayDeployment are the typed
// results of the GraphQL calls below; nothing downstream reads the raw
// response maps.
type RailwayProject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

type RailwayService struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
	CreatedAt string `json:"createdAt"`
}

type RailwayDeployment struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	URL       string `json:"url"`
}

// RailwayClient issues mutations against Railway's GraphQL API on behalf of
// one user token. Tokens arrive per-request, so a client is constructed per
// deployment rather than at process start.
type RailwayClient struct {
	client *graphql.Client
	token  string
}

func NewRailwayClient(token string) *RailwayClient {
	return &RailwayClient{client: graphql.NewClient(railwayAPIURL), token: token}
}

func (r *RailwayClient) newRequest(query string) *graphql.Request {
	req := graphql.NewRequest(query)
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (r *RailwayClient) CreateProject(ctx context.Context, name string) (RailwayProject, error) {
	req := r.newRequest(`
		mutation CreateProject($name: String!) {
			projectCreate(name: $name) {
				id
				name
				createdAt
			}
		}`)
	req.Var("name", name)

	var resp struct {
		ProjectCreate RailwayProject `json:"projectCreate"`
	}
	if err := r.client.Run(ctx, req, &resp); err != nil {
		return RailwayProject{}, fmt.Errorf("railway: create project: %w", err)
	}
	return resp.ProjectCreate, nil
}

func (r *RailwayClient) CreateService(ctx context.Context, projectID, name string) (RailwayService, error) {
	req := r.newRequest(`
		mutation CreateService($projectId: String!, $name: String!) {
			serviceCreate(projectId: $projectId, name: $name) {
				id
				name
				projectId
				createdAt
			}
		}`)
	req.Var("projectId", projectID)
	req.Var("name", name)

	var resp struct {
		ServiceCreate RailwayService `json:"serviceCreate"`
	}
	if err := r.client.Run(ctx, req, &resp); err != nil {
		return RailwayService{}, fmt.Errorf("railway: create service: %w", err)
	}
	return resp.ServiceCreate, nil
}

func (r *RailwayClient) CreateDatabase(ctx context.Context, projectID, name, plugin string) (RailwayService, error) {
	req := r.newRequest(`
		mutation CreateDatabase($projectId: String!, $name: String!, $plugin: String!) {
			pluginCreate(projectId: $projectId, name: $name, plugin: $plugin) {
				id
				name
				projectId
				createdAt
			}
		}`)
	req.Var("projectId", projectID)
	req.Var("name", name)
	req.Var("plugin", plugin)

	var resp struct {
		PluginCreate RailwayService `json:"pluginCreate"`
	}
	if err := r.client.Run(ctx, req, &resp); err != nil {
		return RailwayService{}, fmt.Errorf("railway: create database: %w", err)
	}
	return resp.PluginCreate, nil
}

// SetServiceVariables is best-effort: a service with missing variables is
// still a deployed service.
func (r *RailwayClient) SetServiceVariables(ctx context.Context, serviceID string, vars map[string]string) error {
	type variableInput struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	inputs := make([]variableInput, 0, len(vars))
	for k, v := range vars {
		inputs = append(inputs, variableInput{Name: k, Value: v})
	}

	req := r.newRequest(`
		mutation SetVariables($serviceId: String!, $variables: [VariableInput!]!) {
			variablesSet(serviceId: $serviceId, variables: $variables) {
				id
			}
		}`)
	req.Var("serviceId", serviceID)
	req.Var("variables", inputs)

	var resp struct {
		VariablesSet *struct {
			ID string `json:"id"`
		} `json:"variablesSet"`
	}
	if err := r.client.Run(ctx, req, &resp); err != nil {
		return fmt.Errorf("railway: set variables: %w", err)
	}
	return nil
}

func (r *RailwayClient) GetProject(ctx context.Context, projectID string) (RailwayProject, []RailwayService, error) {
	req := r.newRequest(`
		query GetProject($projectId: String!) {
			project(id: $projectId) {
				id
				name
				createdAt
				services {
					id
					name
				}
			}
		}`)
	req.Var("projectId", projectID)

	var resp struct {
		Project struct {
			RailwayProject
			Services []RailwayService `json:"services"`
		} `json:"project"`
	}
	if err := r.client.Run(ctx, req, &resp); err != nil {
		return RailwayProject{}, nil, fmt.Errorf("railway: get project: %w", err)
	}
	return resp.Project.RailwayProject, resp.Project.Services, nil
}

func (r *RailwayClient) GetService(ctx context.Context, serviceID string) (RailwayService, []RailwayDeployment, error) {
	req := r.newRequest(`
		query GetService($serviceId: String!) {
			service(id: $serviceId) {
				id
				name
				projectId
				deployments {
					id
					status
					createdAt
					url
				}
			}
		}`)
	req.Var("serviceId", serviceID)

	var resp struct {
		Service struct {
			RailwayService
			Deployments []RailwayDeployment `json:"deployments"`
		} `json:"service"`
	}
	if err := r.client.Run(ctx, req, &resp); err != nil {
		return RailwayService{}, nil, fmt.Errorf("railway: get service: %w", err)
	}
	return resp.Service.RailwayService, resp.Service.Deployments, nil
}

func (r *RailwayClient) TriggerDeployment(ctx context.Context, serviceID string) (RailwayDeployment, error) {
	req := r.newRequest(`
		mutation TriggerDeployment($serviceId: String!) {
			deploymentCreate(serviceId: $serviceId) {
				id
				status
				createdAt
			}
		}`)
	req.Var("serviceId", serviceID)

	var resp struct {
		DeploymentCreate RailwayDeployment `json:"deploymentCreate"`
	}
	if err := r.client.Run(ctx, req, &resp); err != nil {
		return RailwayDeployment{}, fmt.Errorf("railway: trigger deployment: %w", err)
	}
	return resp.DeploymentCreate, nil
}
