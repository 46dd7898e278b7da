package console

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/appbuilder-labs/aio-app/internal/branding"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Workflow adds services to the workspace configured for a project.
type Workflow struct {
	Client   Client
	Prompter Prompter
	Store    Store
	// CertDir is where the console client stores generated integration
	// certificates. Defaults to DefaultCertDir().
	CertDir string
	Logger  *zap.Logger
}

// projectRef is the part of the project block the workflow needs.
type projectRef struct {
	orgID     string
	project   Project
	workspace Workspace
}

// DefaultCertDir returns the per-user directory for integration certificates.
func DefaultCertDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, branding.DataNamespace(), "entp-int-certs")
}

// AddServices runs the workflow. It returns nil without subscribing when the
// user picks no operation or declines the confirmation.
func (w *Workflow) AddServices(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	certDir := w.CertDir
	if certDir == "" {
		certDir = DefaultCertDir()
	}

	ref, err := readProject(w.Store.Get("project"))
	if err != nil {
		return err
	}

	orgServices, err := w.Client.GetEnabledServicesForOrg(ctx, ref.orgID)
	if err != nil {
		return fmt.Errorf("fetching services enabled for org %s: %w", ref.orgID, err)
	}
	current, err := w.Client.GetServicePropertiesFromWorkspace(ctx, ref.orgID, ref.project.ID, ref.workspace, orgServices)
	if err != nil {
		return fmt.Errorf("fetching services of workspace %s: %w", ref.workspace.Name, err)
	}

	// Refresh the local view even if nothing gets added.
	if err := w.persistWorkspace(current); err != nil {
		return err
	}
	if err := w.persistOrg(orgServices); err != nil {
		return err
	}

	available := unsubscribed(orgServices, current)
	op, err := w.Prompter.SelectOperation(ctx, ref.workspace.Name, len(available) > 0, true)
	if err != nil {
		return err
	}
	logger.Debug("service subscription operation", zap.String("op", string(op)))

	var next []ServiceProperty
	switch op {
	case OpNop:
		return nil
	case OpSelect:
		if len(available) == 0 {
			return ErrAllServicesAdded
		}
		selected, err := w.Prompter.SelectServiceProperties(ctx, ref.workspace.Name, available)
		if err != nil {
			return err
		}
		next = append(append(next, selected...), current...)
	case OpClone:
		workspaces, err := w.Client.GetWorkspaces(ctx, ref.orgID, ref.project.ID)
		if err != nil {
			return fmt.Errorf("fetching workspaces of project %s: %w", ref.project.Name, err)
		}
		others := make([]Workspace, 0, len(workspaces))
		for _, ws := range workspaces {
			if ws.ID != ref.workspace.ID {
				others = append(others, ws)
			}
		}
		src, err := w.Prompter.SelectWorkspace(ctx, others)
		if err != nil {
			return err
		}
		next, err = w.Client.GetServicePropertiesFromWorkspace(ctx, ref.orgID, ref.project.ID, src, orgServices)
		if err != nil {
			return fmt.Errorf("fetching services of workspace %s: %w", src.Name, err)
		}
	default:
		return fmt.Errorf("unknown service operation %q", op)
	}

	ok, err := w.Prompter.ConfirmSubscriptions(ctx, ref.workspace.Name, next)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := w.Client.SubscribeToServices(ctx, ref.orgID, ref.project, ref.workspace, certDir, next); err != nil {
		return fmt.Errorf("subscribing workspace %s to services: %w", ref.workspace.Name, err)
	}
	logger.Info("workspace services updated",
		zap.String("workspace", ref.workspace.Name),
		zap.Int("services", len(next)))
	return w.persistWorkspace(next)
}

func (w *Workflow) persistWorkspace(props []ServiceProperty) error {
	list := make([]map[string]interface{}, 0, len(props))
	for _, p := range props {
		list = append(list, map[string]interface{}{"name": p.Name, "code": p.SDKCode})
	}
	if err := w.Store.Set(WorkspaceServicesKey, list, true); err != nil {
		return fmt.Errorf("saving workspace services: %w", err)
	}
	return nil
}

func (w *Workflow) persistOrg(services []OrgService) error {
	list := make([]map[string]interface{}, 0, len(services))
	for _, s := range services {
		list = append(list, map[string]interface{}{"name": s.Name, "code": s.Code, "type": s.Type})
	}
	if err := w.Store.Set(OrgServicesKey, list, true); err != nil {
		return fmt.Errorf("saving org services: %w", err)
	}
	return nil
}

// unsubscribed returns the org services not yet in the workspace, matching
// an org service code against a workspace service SDK code.
func unsubscribed(org []OrgService, current []ServiceProperty) []OrgService {
	have := make(map[string]bool, len(current))
	for _, p := range current {
		have[p.SDKCode] = true
	}
	var out []OrgService
	for _, s := range org {
		if !have[s.Code] {
			out = append(out, s)
		}
	}
	return out
}

func readProject(raw interface{}) (*projectRef, error) {
	if raw == nil {
		return nil, &IncompleteConfigError{Key: "project"}
	}
	project := cast.ToStringMap(raw)
	org := cast.ToStringMap(project["org"])
	ws := cast.ToStringMap(project["workspace"])

	ref := &projectRef{
		orgID:     cast.ToString(org["id"]),
		project:   Project{ID: cast.ToString(project["id"]), Name: cast.ToString(project["name"])},
		workspace: Workspace{ID: cast.ToString(ws["id"]), Name: cast.ToString(ws["name"])},
	}
	switch {
	case ref.orgID == "":
		return nil, &IncompleteConfigError{Key: "project.org.id"}
	case ref.project.ID == "":
		return nil, &IncompleteConfigError{Key: "project.id"}
	case ref.workspace.ID == "":
		return nil, &IncompleteConfigError{Key: "project.workspace.id"}
	}
	return ref, nil
}
