package console

import (
	"sync"
	"testing"
	"time"

	"operator_console/pkg/apiclient"
	testtool "operator_console/pkg/test_tool"
	"operator_console/pkg/view"

	"github.com/stretchr/testify/require"
)

// recorder 記錄最新畫面與提示
type recorder struct {
	mu      sync.Mutex
	regions map[string]*view.Node
	renders map[string]int
	alerts  []string
}

func newRecorder() *recorder {
	return &recorder{regions: make(map[string]*view.Node), renders: make(map[string]int)}
}

func (r *recorder) Render(region string, root *view.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions[region] = root
	r.renders[region]++
}

func (r *recorder) Alert(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, message)
}

func (r *recorder) Node(region string) *view.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.regions[region]
}

func (r *recorder) Texts(region string) []string {
	return view.Texts(r.Node(region))
}

func (r *recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

func (r *recorder) LastAlert() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return ""
	}
	return r.alerts[len(r.alerts)-1]
}

type fixture struct {
	backend *testtool.MockBackend
	rec     *recorder
	app     *App
}

func startFixture() (*fixture, func(), error) {
	backend := testtool.NewMockBackend(nil)
	backend.SeedDemo()
	baseURL, err := backend.Start()
	if err != nil {
		return nil, nil, err
	}

	rec := newRecorder()
	app := NewApp(apiclient.New(baseURL, 2*time.Second), rec, rec)
	cleanup := func() {
		app.Close()
		_ = backend.Close()
	}
	return &fixture{backend: backend, rec: rec, app: app}, cleanup, nil
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f, cleanup, err := startFixture()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return f
}
