package console

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/georgemunganga/copydesk/internal/logger"
	"github.com/georgemunganga/copydesk/internal/modules/brief"
	"github.com/georgemunganga/copydesk/internal/modules/catalog"
	"github.com/georgemunganga/copydesk/internal/modules/endpoint"
	"github.com/georgemunganga/copydesk/internal/modules/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T) (*Console, *fakeAPI) {
	t.Helper()
	api, srv := newFakeAPI(t)
	repo := catalog.NewRemoteRepository(endpoint.NewResolver(srv.URL), logger.Nop())
	c := New(catalog.NewService(repo), logger.Nop(), Options{NoticeTTL: time.Hour, APIBase: srv.URL})
	t.Cleanup(c.Close)
	return c, api
}

func currentNotice(t *testing.T, c *Console) notify.Notice {
	t.Helper()
	n, ok := c.Notice()
	require.True(t, ok, "expected a notice")
	return n
}

func TestRefresh_SelectsMostRecent(t *testing.T) {
	c, api := newTestConsole(t)
	api.seed("A", "Lamp", 1)
	api.seed("B", "Desk", 2)

	require.NoError(t, c.Refresh(context.Background()))
	s := c.Snapshot()
	require.Len(t, s.Products, 2)
	assert.Equal(t, "B", s.Products[0].ID)
	assert.Equal(t, "B", s.SelectedID)

	v := c.currentView()
	require.NotNil(t, v.Detail)
	assert.Equal(t, "Desk", v.Detail.Name)
	assert.True(t, v.Items[0].Selected)
}

func TestRefresh_FailureShowsStatusInBanner(t *testing.T) {
	c, api := newTestConsole(t)
	api.setStatus(&api.listStatus, http.StatusInternalServerError)

	require.Error(t, c.Refresh(context.Background()))
	n := currentNotice(t, c)
	assert.Equal(t, notify.KindError, n.Kind)
	assert.Contains(t, n.Message, "500")
	assert.Contains(t, n.Message, "store offline")
}

func TestCreate_EmptyNameIssuesNoRequest(t *testing.T) {
	c, api := newTestConsole(t)

	err := c.Create(context.Background(), brief.Form{Name: "  ", Features: "a"}, "", true)
	var vErr *catalog.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, api.callCount())
	assert.Equal(t, "Please provide a product name first.", currentNotice(t, c).Message)
	assert.Equal(t, "a", c.Snapshot().Draft.Features, "typed input is kept")
}

func TestCreate_UpsertsSelectsAndResetsDraft(t *testing.T) {
	c, api := newTestConsole(t)
	api.seed("A", "Lamp", 1)
	require.NoError(t, c.Refresh(context.Background()))

	form := brief.Form{Name: "Kettle", Features: "Fast boil\nQuiet", Keywords: "kettle, kitchen", Length: "short"}
	require.NoError(t, c.Create(context.Background(), form, "", true))

	s := c.Snapshot()
	require.Len(t, s.Products, 2)
	created := s.Selected()
	require.NotNil(t, created)
	assert.Equal(t, "Kettle", created.Name)
	assert.Equal(t, []string{"Fast boil", "Quiet"}, created.Features)
	assert.Equal(t, brief.DefaultTone, catalog.Deref(created.Tone))
	assert.Equal(t, "Generated copy for Kettle", created.Description)
	assert.Equal(t, brief.DefaultForm(), s.Draft)
	assert.Equal(t, notify.KindSuccess, currentNotice(t, c).Kind)
}

func TestEditUpdateFlow(t *testing.T) {
	c, api := newTestConsole(t)
	api.seed("A", "Lamp", 1)
	api.seed("B", "Desk", 2)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.Edit("A"))
	s := c.Snapshot()
	assert.Equal(t, "A", s.EditingID)
	assert.Equal(t, "Lamp", s.Draft.Name)
	assert.Equal(t, "Copy for Lamp", s.DraftDescription)

	form := s.Draft
	form.Name = "Lamp Pro"
	require.NoError(t, c.Update(context.Background(), "A", form, "Hand written.", false))

	s = c.Snapshot()
	assert.Empty(t, s.EditingID)
	assert.Equal(t, "A", s.SelectedID)
	assert.Equal(t, "A", s.Products[0].ID, "updated record is the most recent")
	assert.Equal(t, "Lamp Pro", s.Products[0].Name)
	assert.Equal(t, "Hand written.", s.Products[0].Description)
}

func TestDelete_EditedRecordResetsDraft(t *testing.T) {
	c, api := newTestConsole(t)
	api.seed("A", "Lamp", 1)
	api.seed("C", "Chair", 2)
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.Edit("C"))

	require.NoError(t, c.Delete(context.Background(), "C"))
	s := c.Snapshot()
	assert.Empty(t, s.EditingID)
	assert.Equal(t, brief.DefaultForm(), s.Draft)
	assert.Equal(t, "A", s.SelectedID)
}

func TestDelete_NotFoundKeepsRecord(t *testing.T) {
	c, api := newTestConsole(t)
	api.seed("A", "Lamp", 1)
	require.NoError(t, c.Refresh(context.Background()))

	api.mu.Lock()
	delete(api.products, "A")
	api.mu.Unlock()

	require.Error(t, c.Delete(context.Background(), "A"))
	assert.Len(t, c.Snapshot().Products, 1, "no optimistic removal without success")
	assert.Contains(t, currentNotice(t, c).Message, "Product not found")
}

func TestGenerate_UnavailableBackend(t *testing.T) {
	c, api := newTestConsole(t)
	api.setStatus(&api.generateStatus, http.StatusServiceUnavailable)

	err := c.Generate(context.Background(), brief.Form{Name: "Lamp"}, "draft")
	require.ErrorIs(t, err, catalog.ErrGenerationUnavailable)
	n := currentNotice(t, c)
	assert.Equal(t, notify.KindError, n.Kind)
	assert.Contains(t, n.Message, "generation backend is unavailable")
	assert.Equal(t, "draft", c.Snapshot().DraftDescription)
}

func TestGenerate_FillsDraftDescription(t *testing.T) {
	c, _ := newTestConsole(t)
	require.NoError(t, c.Generate(context.Background(), brief.Form{Name: "Lamp"}, ""))
	assert.True(t, strings.HasPrefix(c.Snapshot().DraftDescription, "# Lamp"))
	assert.Empty(t, c.Snapshot().Products, "preview saves nothing")
}

func TestEdit_UnknownID(t *testing.T) {
	c, _ := newTestConsole(t)
	require.Error(t, c.Edit("ghost"))
	require.Error(t, c.Select("ghost"))
	assert.Empty(t, c.Snapshot().EditingID)
}

func TestMessageFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&catalog.ValidationError{Field: "name", Message: "required"}, "Please provide a product name first."},
		{&catalog.HTTPError{Op: "list products", Status: 502, Detail: "bad gateway"}, "Failed to list products (502): bad gateway"},
		{&catalog.NetworkError{Op: "delete product", Err: io.EOF}, "Failed to delete product: the product API could not be reached."},
		{fmt.Errorf("%w: %w", catalog.ErrGenerationUnavailable, &catalog.HTTPError{Status: 503}), "The generation backend is unavailable"},
	}
	for _, tt := range tests {
		assert.True(t, strings.HasPrefix(MessageFor(tt.err), tt.want), "MessageFor(%v) = %q", tt.err, MessageFor(tt.err))
	}
}

func TestHandler_FormRoundTrip(t *testing.T) {
	c, api := newTestConsole(t)
	api.seed("A", "Lamp", 1)
	srv := httptest.NewServer(NewHandler(c).Router())
	t.Cleanup(srv.Close)

	client := srv.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	resp, err := client.PostForm(srv.URL+"/products/refresh", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = client.PostForm(srv.URL+"/products", url.Values{
		"name":          {"Kettle"},
		"features":      {"Fast boil"},
		"seo_keywords":  {"kettle"},
		"length":        {"standard"},
		"description":   {"**Bold** copy"},
		"auto_generate": {""},
	})
	require.NoError(t, err)
	resp.Body.Close()

	s := c.Snapshot()
	require.Len(t, s.Products, 2)
	assert.Equal(t, "Kettle", s.Selected().Name)
	assert.Equal(t, "**Bold** copy", s.Selected().Description)
	assert.Equal(t, catalog.LengthStandard, s.Selected().Length)

	resp, err = client.Get(srv.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	page := string(body)
	assert.Contains(t, page, "Kettle")
	assert.Contains(t, page, "Lamp")
	assert.Contains(t, page, "<strong>Bold</strong>")
	assert.Contains(t, page, "Created &#34;Kettle&#34;.")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestHandler_MalformedFormIsReported(t *testing.T) {
	c, api := newTestConsole(t)
	router := NewHandler(c).Router()

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("name=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, api.callCount())
	n := currentNotice(t, c)
	assert.Equal(t, notify.KindError, n.Kind)
	assert.Equal(t, "Invalid form: the submitted form could not be read.", n.Message)
}

func TestHandler_DescriptionIsSanitized(t *testing.T) {
	c, _ := newTestConsole(t)
	require.NoError(t, c.Create(context.Background(), brief.Form{Name: "Lamp"}, "Hi <script>alert(1)</script>", false))

	html := string(c.currentView().Detail.DescriptionHTML)
	assert.NotContains(t, html, "<script>")
}

func TestHandler_StateJSON(t *testing.T) {
	c, api := newTestConsole(t)
	api.seed("A", "Lamp", 1)
	require.NoError(t, c.Refresh(context.Background()))

	rec := httptest.NewRecorder()
	NewHandler(c).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"selected_id":"A"`)
	assert.Contains(t, rec.Body.String(), `"tone":"balanced"`)
}
