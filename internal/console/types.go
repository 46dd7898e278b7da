package console

import "context"

// Operation is what the user chose to do with the workspace services.
type Operation string

const (
	OpNop    Operation = "nop"
	OpSelect Operation = "select"
	OpClone  Operation = "clone"
)

// Config keys the service selections are persisted under.
const (
	WorkspaceServicesKey = "project.workspace.details.services"
	OrgServicesKey       = "project.org.details.services"
)

// Project identifies a console project.
type Project struct {
	ID   string
	Name string
}

// Workspace identifies a console workspace.
type Workspace struct {
	ID   string
	Name string
}

// OrgService is a service enabled for the organization.
type OrgService struct {
	Name string
	Code string
	Type string
}

// ServiceProperty describes a service subscribed (or to be subscribed) by a
// workspace, including the product profiles it is bound to.
type ServiceProperty struct {
	Name           string
	SDKCode        string
	Roles          []string
	LicenseConfigs []string
}

// Client is the subset of the console API the workflow needs.
type Client interface {
	GetEnabledServicesForOrg(ctx context.Context, orgID string) ([]OrgService, error)
	GetWorkspaces(ctx context.Context, orgID, projectID string) ([]Workspace, error)
	GetServicePropertiesFromWorkspace(ctx context.Context, orgID, projectID string, ws Workspace, orgServices []OrgService) ([]ServiceProperty, error)
	SubscribeToServices(ctx context.Context, orgID string, project Project, ws Workspace, certDir string, props []ServiceProperty) error
}

// Prompter collects the user's decisions.
type Prompter interface {
	SelectOperation(ctx context.Context, workspace string, canSelect, canClone bool) (Operation, error)
	SelectWorkspace(ctx context.Context, workspaces []Workspace) (Workspace, error)
	SelectServiceProperties(ctx context.Context, workspace string, choices []OrgService) ([]ServiceProperty, error)
	ConfirmSubscriptions(ctx context.Context, workspace string, props []ServiceProperty) (bool, error)
}

// Store reads and writes CLI configuration. *config.Store satisfies it.
type Store interface {
	Get(key string) interface{}
	Set(key string, value interface{}, local bool) error
}
