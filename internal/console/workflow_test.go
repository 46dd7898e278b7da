package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	values map[string]interface{}
	sets   []string
	global []string // keys written with local=false
}

func (s *memStore) Get(key string) interface{} { return s.values[key] }

func (s *memStore) Set(key string, value interface{}, local bool) error {
	if s.values == nil {
		s.values = map[string]interface{}{}
	}
	s.values[key] = value
	s.sets = append(s.sets, key)
	if !local {
		s.global = append(s.global, key)
	}
	return nil
}

type fakeClient struct {
	orgServices []OrgService
	workspaces  []Workspace
	props       map[string][]ServiceProperty // by workspace id

	subscribed     []ServiceProperty
	subscribedTo   Workspace
	subscribedCert string
	subscribeCalls int
}

func (c *fakeClient) GetEnabledServicesForOrg(ctx context.Context, orgID string) ([]OrgService, error) {
	return c.orgServices, nil
}

func (c *fakeClient) GetWorkspaces(ctx context.Context, orgID, projectID string) ([]Workspace, error) {
	return c.workspaces, nil
}

func (c *fakeClient) GetServicePropertiesFromWorkspace(ctx context.Context, orgID, projectID string, ws Workspace, orgServices []OrgService) ([]ServiceProperty, error) {
	return c.props[ws.ID], nil
}

func (c *fakeClient) SubscribeToServices(ctx context.Context, orgID string, project Project, ws Workspace, certDir string, props []ServiceProperty) error {
	c.subscribeCalls++
	c.subscribed = props
	c.subscribedTo = ws
	c.subscribedCert = certDir
	return nil
}

type fakePrompter struct {
	op        Operation
	selected  []ServiceProperty
	workspace Workspace
	confirm   bool

	offered   []OrgService
	offeredWS []Workspace
	canSelect bool
}

func (p *fakePrompter) SelectOperation(ctx context.Context, workspace string, canSelect, canClone bool) (Operation, error) {
	p.canSelect = canSelect
	return p.op, nil
}

func (p *fakePrompter) SelectWorkspace(ctx context.Context, workspaces []Workspace) (Workspace, error) {
	p.offeredWS = workspaces
	return p.workspace, nil
}

func (p *fakePrompter) SelectServiceProperties(ctx context.Context, workspace string, choices []OrgService) ([]ServiceProperty, error) {
	p.offered = choices
	return p.selected, nil
}

func (p *fakePrompter) ConfirmSubscriptions(ctx context.Context, workspace string, props []ServiceProperty) (bool, error) {
	return p.confirm, nil
}

func projectStore() *memStore {
	return &memStore{values: map[string]interface{}{
		"project": map[string]interface{}{
			"id":   "proj-1",
			"name": "myproject",
			"org":  map[string]interface{}{"id": "org-1"},
			"workspace": map[string]interface{}{
				"id":   "ws-1",
				"name": "Stage",
			},
		},
	}}
}

var (
	orgServices = []OrgService{
		{Name: "first", Code: "firsts", Type: "entp"},
		{Name: "sec", Code: "secs", Type: "entp"},
		{Name: "third", Code: "thirds", Type: "entp"},
	}
	firstProp = ServiceProperty{Name: "first", SDKCode: "firsts"}
	secProp   = ServiceProperty{Name: "sec", SDKCode: "secs"}
	thirdProp = ServiceProperty{Name: "third", SDKCode: "thirds"}
)

func newWorkflow(store *memStore, client *fakeClient, prompter *fakePrompter) *Workflow {
	return &Workflow{Client: client, Prompter: prompter, Store: store, CertDir: "/certs"}
}

func TestAddServices_MissingProject(t *testing.T) {
	w := newWorkflow(&memStore{}, &fakeClient{}, &fakePrompter{})
	err := w.AddServices(context.Background())

	var incomplete *IncompleteConfigError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, "project", incomplete.Key)
	assert.Contains(t, err.Error(), "Incomplete .aio configuration")
}

func TestAddServices_MissingWorkspaceID(t *testing.T) {
	store := projectStore()
	project := store.values["project"].(map[string]interface{})
	delete(project, "workspace")

	err := newWorkflow(store, &fakeClient{}, &fakePrompter{}).AddServices(context.Background())

	var incomplete *IncompleteConfigError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, "project.workspace.id", incomplete.Key)
}

func TestAddServices_NopPersistsCurrentState(t *testing.T) {
	store := projectStore()
	client := &fakeClient{
		orgServices: orgServices,
		props:       map[string][]ServiceProperty{"ws-1": {firstProp, secProp}},
	}
	prompter := &fakePrompter{op: OpNop}

	require.NoError(t, newWorkflow(store, client, prompter).AddServices(context.Background()))

	assert.Zero(t, client.subscribeCalls)
	assert.Equal(t, []string{WorkspaceServicesKey, OrgServicesKey}, store.sets)
	assert.Equal(t, []map[string]interface{}{
		{"name": "first", "code": "firsts"},
		{"name": "sec", "code": "secs"},
	}, store.values[WorkspaceServicesKey])
	assert.Equal(t, []map[string]interface{}{
		{"name": "first", "code": "firsts", "type": "entp"},
		{"name": "sec", "code": "secs", "type": "entp"},
		{"name": "third", "code": "thirds", "type": "entp"},
	}, store.values[OrgServicesKey])
}

func TestAddServices_SelectAllAlreadyAdded(t *testing.T) {
	client := &fakeClient{
		orgServices: orgServices[:2],
		props:       map[string][]ServiceProperty{"ws-1": {firstProp, secProp}},
	}
	prompter := &fakePrompter{op: OpSelect}

	err := newWorkflow(projectStore(), client, prompter).AddServices(context.Background())
	require.ErrorIs(t, err, ErrAllServicesAdded)
	assert.Equal(t, "All supported Services in the Organization have already been added", err.Error())
	assert.False(t, prompter.canSelect)
	assert.Zero(t, client.subscribeCalls)
}

func TestAddServices_SelectNewServices(t *testing.T) {
	store := projectStore()
	client := &fakeClient{
		orgServices: orgServices,
		props:       map[string][]ServiceProperty{"ws-1": {firstProp}},
	}
	prompter := &fakePrompter{op: OpSelect, selected: []ServiceProperty{secProp}, confirm: true}

	require.NoError(t, newWorkflow(store, client, prompter).AddServices(context.Background()))

	assert.Equal(t, []OrgService{orgServices[1], orgServices[2]}, prompter.offered)
	assert.Equal(t, 1, client.subscribeCalls)
	assert.Equal(t, []ServiceProperty{secProp, firstProp}, client.subscribed)
	assert.Equal(t, Workspace{ID: "ws-1", Name: "Stage"}, client.subscribedTo)
	assert.Equal(t, "/certs", client.subscribedCert)

	// before and after the subscription
	assert.Equal(t, []string{WorkspaceServicesKey, OrgServicesKey, WorkspaceServicesKey}, store.sets)
	assert.Empty(t, store.global, "selections belong to the project .aio, where the imported project lives")
	assert.Equal(t, []map[string]interface{}{
		{"name": "sec", "code": "secs"},
		{"name": "first", "code": "firsts"},
	}, store.values[WorkspaceServicesKey])
}

func TestAddServices_CloneFromOtherWorkspace(t *testing.T) {
	other := Workspace{ID: "ws-2", Name: "Production"}
	client := &fakeClient{
		orgServices: orgServices,
		workspaces:  []Workspace{{ID: "ws-1", Name: "Stage"}, other},
		props: map[string][]ServiceProperty{
			"ws-1": {thirdProp},
			"ws-2": {firstProp, thirdProp},
		},
	}
	prompter := &fakePrompter{op: OpClone, workspace: other, confirm: true}

	require.NoError(t, newWorkflow(projectStore(), client, prompter).AddServices(context.Background()))

	assert.Equal(t, []Workspace{other}, prompter.offeredWS)
	assert.Equal(t, []ServiceProperty{firstProp, thirdProp}, client.subscribed)
	assert.Equal(t, "ws-1", client.subscribedTo.ID)
}

func TestAddServices_NotConfirmed(t *testing.T) {
	store := projectStore()
	client := &fakeClient{
		orgServices: orgServices,
		props:       map[string][]ServiceProperty{"ws-1": {firstProp}},
	}
	prompter := &fakePrompter{op: OpSelect, selected: []ServiceProperty{secProp}, confirm: false}

	require.NoError(t, newWorkflow(store, client, prompter).AddServices(context.Background()))
	assert.Zero(t, client.subscribeCalls)
	assert.Len(t, store.sets, 2)
}

func TestDefaultCertDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data-dir")
	assert.Equal(t, "/data-dir/@adobe/aio-cli-plugin-app/entp-int-certs", DefaultCertDir())
}
