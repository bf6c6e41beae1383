package router

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	paseto "aidanwoods.dev/go-paseto"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/internal/api/http/middleware"
	"github.com/nguyenanhtu/realty_backend/internal/contract"
	"github.com/nguyenanhtu/realty_backend/internal/model"
	"github.com/nguyenanhtu/realty_backend/internal/service/auth"
	"github.com/nguyenanhtu/realty_backend/internal/service/blog"
	"github.com/nguyenanhtu/realty_backend/internal/service/contact"
	"github.com/nguyenanhtu/realty_backend/internal/service/product"
	"github.com/nguyenanhtu/realty_backend/internal/service/project"
	"github.com/nguyenanhtu/realty_backend/internal/service/upload"
	"github.com/nguyenanhtu/realty_backend/pkg/constants"
	"github.com/nguyenanhtu/realty_backend/pkg/i18n"
	"github.com/nguyenanhtu/realty_backend/pkg/imagecodec"
	pasetotoken "github.com/nguyenanhtu/realty_backend/pkg/paseto"
	"github.com/nguyenanhtu/realty_backend/pkg/util/otp"
	"github.com/nguyenanhtu/realty_backend/pkg/util/password"
)

const adminPassword = "s3cret-pass"

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

type env struct {
	app      *fiber.App
	clock    *clock
	blogs    *memBlogs
	products *memProducts
	contacts *memContacts
	mail     *outbox
}

func newEnv(t *testing.T) *env {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	clk := &clock{t: time.Now()}
	pm, err := pasetotoken.New(pasetotoken.Config{
		Issuer: "realty", Audience: "admin", TTL: time.Hour, Now: clk.Now,
	}, paseto.NewV4SymmetricKey().ExportHex())
	require.NoError(t, err)

	bundle, err := i18n.New("vi", []string{"vi", "en"})
	require.NoError(t, err)
	v := contract.MustNew()

	e := &env{
		clock:    clk,
		blogs:    newMemBlogs(),
		products: newMemProducts(),
		contacts: newMemContacts(),
		mail:     &outbox{},
	}

	authSvc := auth.New(auth.Deps{
		Admins: &memAdmins{},
		Redis:  rdb,
		Paseto: pm,
		OTP:    otp.NewStore(rdb, 5*time.Minute),
		Hasher: password.NewHasher(password.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}),
		Reset:  config.ResetConfig{PhoneRegion: "VN"},
	})
	require.NoError(t, authSvc.SeedAdmin(context.Background(), "admin", adminPassword, "0912345678"))

	r := NewRouter(Params{
		Cfg:        &config.Config{},
		I18n:       bundle,
		Validator:  v,
		AuthSvc:    authSvc,
		BlogSvc:    blog.New(e.blogs, v),
		ProductSvc: product.New(e.products, v),
		ContactSvc: contact.New(contact.Deps{
			Store: e.contacts, Validator: v, Mailer: e.mail, Translator: bundle, PhoneRegion: "VN",
		}),
		ProjectSvc: project.New(newMemProjects(), v),
		UploadSvc:  upload.New(nil, imagecodec.New(1<<20, 800)),
	})

	e.app = fiber.New()
	e.app.Use(middleware.RequestID())
	r.Register(e.app)
	return e
}

func (e *env) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func jsonReq(method, target string, body any) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func withCookie(req *http.Request, c *http.Cookie) *http.Request {
	if c != nil {
		req.AddCookie(c)
	}
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *env) login(t *testing.T) *http.Cookie {
	t.Helper()
	resp := e.do(t, jsonReq(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin", "password": adminPassword,
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == constants.AuthCookieName {
			return c
		}
	}
	t.Fatal("login did not set the token cookie")
	return nil
}

func (e *env) createBlog(t *testing.T, cookie *http.Cookie, title string) model.Blog {
	t.Helper()
	resp := e.do(t, withCookie(jsonReq(http.MethodPost, "/api/blogs", map[string]string{
		"title": title, "content": "<p>body</p>", "description": "desc", "image": "https://cdn.example.com/a.jpg",
	}), cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[model.Blog](t, resp)
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestLogin_CookieAndVerifyUntilExpiry(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	resp := e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil), cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, true, body["success"])

	e.clock.t = e.clock.t.Add(61 * time.Minute)
	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil), cookie))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, jsonReq(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin", "password": "nope",
	}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
}

func TestVerify_NoToken(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_RevokesSession(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	resp := e.do(t, withCookie(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil), cookie))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckPhone(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, jsonReq(http.MethodPost, "/api/auth/check-phone", map[string]string{"phone": "+84 912 345 678"}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.do(t, jsonReq(http.MethodPost, "/api/auth/check-phone", map[string]string{"phone": "0987654321"}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = e.do(t, jsonReq(http.MethodPost, "/api/auth/check-phone", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResetPassword_ThenLoginWithNewPassword(t *testing.T) {
	e := newEnv(t)
	old := e.login(t)

	resp := e.do(t, jsonReq(http.MethodPost, "/api/auth/reset-password", map[string]string{
		"phone": "0912345678", "newPassword": "short",
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = e.do(t, jsonReq(http.MethodPost, "/api/auth/reset-password", map[string]string{
		"phone": "0912345678", "newPassword": "brand-new-pass",
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// existing sessions are revoked
	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil), old))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = e.do(t, jsonReq(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin", "password": "brand-new-pass",
	}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ---------------------------------------------------------------------------
// Blogs
// ---------------------------------------------------------------------------

func TestMutations_RequireAdmin(t *testing.T) {
	e := newEnv(t)
	id := primitive.NewObjectID().Hex()

	for _, req := range []*http.Request{
		jsonReq(http.MethodPost, "/api/blogs", map[string]string{"title": "x"}),
		jsonReq(http.MethodPatch, "/api/blogs/"+id, map[string]string{"title": "x"}),
		httptest.NewRequest(http.MethodDelete, "/api/blogs/"+id, nil),
		jsonReq(http.MethodPost, "/api/products", map[string]string{"name": "x"}),
		jsonReq(http.MethodPost, "/api/projects", map[string]string{"name": "x"}),
		httptest.NewRequest(http.MethodGet, "/api/contacts", nil),
	} {
		resp := e.do(t, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", req.Method, req.URL.Path)
	}
}

func TestBlog_MissingIDIs404(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	for range 5 {
		id := primitive.NewObjectID().Hex()
		resp := e.do(t, httptest.NewRequest(http.MethodGet, "/api/blogs/"+id, nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = e.do(t, withCookie(jsonReq(http.MethodPatch, "/api/blogs/"+id, map[string]string{"title": "x"}), cookie))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

func TestBlog_MalformedIDIs400(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	for _, id := range []string{"abc", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", primitive.NewObjectID().Hex() + "0"} {
		resp := e.do(t, httptest.NewRequest(http.MethodGet, "/api/blogs/"+id, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)

		resp = e.do(t, withCookie(jsonReq(http.MethodPatch, "/api/blogs/"+id, map[string]string{"title": "x"}), cookie))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)

		resp = e.do(t, withCookie(httptest.NewRequest(http.MethodPatch, "/api/blogs/"+id, nil), cookie))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "no body: "+id)

		req := httptest.NewRequest(http.MethodPatch, "/api/blogs/"+id, strings.NewReader("title=x"))
		req.Header.Set("Content-Type", "text/plain")
		resp = e.do(t, withCookie(req, cookie))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "text/plain: "+id)

		resp = e.do(t, withCookie(httptest.NewRequest(http.MethodDelete, "/api/blogs/"+id, nil), cookie))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
	}
}

func TestProduct_MalformedIDIs400(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	for _, id := range []string{"abc", "123", primitive.NewObjectID().Hex() + "0"} {
		resp := e.do(t, httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)

		resp = e.do(t, withCookie(httptest.NewRequest(http.MethodPatch, "/api/products/"+id, nil), cookie))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "no body: "+id)

		resp = e.do(t, withCookie(jsonReq(http.MethodPatch, "/api/products/"+id, map[string]any{"listImages": "not json"}), cookie))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "bad images: "+id)

		resp = e.do(t, withCookie(httptest.NewRequest(http.MethodDelete, "/api/products/"+id, nil), cookie))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
	}
}

func TestBlog_DeleteTwice(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)
	b := e.createBlog(t, cookie, "Market update")

	resp := e.do(t, withCookie(httptest.NewRequest(http.MethodDelete, "/api/blogs/"+b.ID.Hex(), nil), cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp), "message")

	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodDelete, "/api/blogs/"+b.ID.Hex(), nil), cookie))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBlog_ListAndGet(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)
	first := e.createBlog(t, cookie, "Hanoi market")
	e.createBlog(t, cookie, "Da Nang villas")

	resp := e.do(t, httptest.NewRequest(http.MethodGet, "/api/blogs?title=HANOI", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]model.Blog](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	resp = e.do(t, httptest.NewRequest(http.MethodGet, "/api/blogs/"+first.ID.Hex(), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[struct{ Data model.Blog }](t, resp)
	assert.Equal(t, "Hanoi market", got.Data.Title)
}

func TestBlog_UpdateBodies(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)
	b := e.createBlog(t, cookie, "Old title")
	target := "/api/blogs/" + b.ID.Hex()

	form := url.Values{"title": {"Form title"}}
	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp := e.do(t, withCookie(req, cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[struct{ Data model.Blog }](t, resp)
	assert.Equal(t, "Form title", got.Data.Title)
	assert.Equal(t, "<p>body</p>", got.Data.Content)

	req = httptest.NewRequest(http.MethodPatch, target, strings.NewReader("title=x"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
	resp = e.do(t, withCookie(req, cookie))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	resp = e.do(t, withCookie(jsonReq(http.MethodPatch, target, map[string]string{"unknown": "x"}), cookie))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

func productForm(t *testing.T, name string, images []string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	raw, err := json.Marshal(images)
	require.NoError(t, err)
	fields := map[string]string{
		"name":          name,
		"area":          "Thu Duc",
		"investor":      "Vinhomes",
		"type":          "on-sale",
		"apartmentType": "2PN",
		"acreage":       "70m2",
		"defaultImage":  images[0],
		"listImages":    string(raw),
		"detail":        "<p>detail</p>",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestProduct_ImagesRoundTrip(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	for n := 1; n <= model.MaxListImages; n++ {
		images := make([]string, n)
		for i := range images {
			images[i] = "data:image/jpeg;base64,img" + string(rune('a'+i))
		}
		// slugs are suffixed at most a few times, so only the first two share a name
		name := "Grand Park"
		if n > 2 {
			name = fmt.Sprintf("Tower %d", n)
		}
		body, ct := productForm(t, name, images)
		req := httptest.NewRequest(http.MethodPost, "/api/products", body)
		req.Header.Set(fiber.HeaderContentType, ct)
		resp := e.do(t, withCookie(req, cookie))
		require.Equal(t, http.StatusCreated, resp.StatusCode, "n=%d", n)
		created := decode[model.Product](t, resp)

		resp = e.do(t, httptest.NewRequest(http.MethodGet, "/api/products/"+created.ID.Hex(), nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decode[struct{ Data model.Product }](t, resp)
		assert.Equal(t, images, got.Data.ListImages, "n=%d", n)
	}

	// the second "Grand Park" got a suffixed slug
	resp := e.do(t, httptest.NewRequest(http.MethodGet, "/api/products/slug/grand-park-2", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProduct_BadListImages(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "X"))
	require.NoError(t, w.WriteField("listImages", "not json"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp := e.do(t, withCookie(req, cookie))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProduct_AreaMultiSelect(t *testing.T) {
	e := newEnv(t)
	for i, area := range []string{"A", "B", "C", "A"} {
		e.products.insert(&model.Product{
			Name: "p" + string(rune('0'+i)), Slug: "p" + string(rune('0'+i)),
			Area: area, Investor: "I", Type: model.ProductTypeOnSale,
		})
	}

	list := func(query string) []model.ProductSummary {
		resp := e.do(t, httptest.NewRequest(http.MethodGet, "/api/products?"+query, nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decode[[]model.ProductSummary](t, resp)
	}

	got := list("area=A&area=B")
	require.Len(t, got, 3)
	for _, p := range got {
		assert.Contains(t, []string{"A", "B"}, p.Area)
	}

	got = list("area=C")
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].Area)

	// legacy label is normalised before filtering
	assert.Len(t, list("type="+url.QueryEscape("Đang mở bán")), 4)
	assert.Empty(t, list("type=booking"))
}

func TestProduct_FilterOptions(t *testing.T) {
	e := newEnv(t)
	e.products.insert(&model.Product{Name: "Vinhome", Slug: "vinhome", Area: "Q9", Investor: "VIN", ApartmentType: "2PN"})
	e.products.insert(&model.Product{Name: "Masteri", Slug: "masteri", Area: "Q2", Investor: "MT", ApartmentType: "2PN"})

	resp := e.do(t, httptest.NewRequest(http.MethodGet, "/api/products/areas", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string][]string{"areas": {"Q2", "Q9"}}, decode[map[string][]string](t, resp))

	resp = e.do(t, httptest.NewRequest(http.MethodGet, "/api/products/apartment-type", nil))
	assert.Equal(t, map[string][]string{"apartmentTypes": {"2PN"}}, decode[map[string][]string](t, resp))

	resp = e.do(t, httptest.NewRequest(http.MethodGet, "/api/products/filters", nil))
	opts := decode[product.Options](t, resp)
	assert.Equal(t, []string{"MT", "VIN"}, opts.Investors)
	assert.Equal(t, []string{"Masteri", "Vinhome"}, opts.Projects)
}

// ---------------------------------------------------------------------------
// Contacts
// ---------------------------------------------------------------------------

func TestContact_SubmitThenListed(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, jsonReq(http.MethodPost, "/api/contacts", map[string]string{
		"name": "Jane", "email": "jane@x.com", "phone": "0912345678", "project": "Vinhome", "message": "hi",
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]bool{"success": true}, decode[map[string]bool](t, resp))
	assert.Equal(t, 1, e.mail.count())

	cookie := e.login(t)
	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/contacts", nil), cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Success bool
		Data    []model.Contact
	}](t, resp)
	require.True(t, body.Success)
	require.Len(t, body.Data, 1)

	c := body.Data[0]
	assert.Equal(t, "Jane", c.Name)
	assert.Equal(t, "jane@x.com", c.Email)
	assert.Equal(t, "0912345678", c.Phone)
	assert.Equal(t, "Vinhome", c.Project)
	assert.Equal(t, "hi", c.Message)
	assert.False(t, c.ID.IsZero())
	assert.False(t, c.CreatedAt.IsZero())

	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/contacts/"+c.ID.Hex(), nil), cookie))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestContact_NotifyFailureKeepsRecord(t *testing.T) {
	e := newEnv(t)
	e.mail.failWith(errors.New("smtp: connection refused"))

	resp := e.do(t, jsonReq(http.MethodPost, "/api/contacts", map[string]string{
		"name": "Jane", "email": "jane@x.com", "phone": "0912345678", "message": "call me",
	}))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, map[string]string{"error": "internal server error"}, decode[map[string]string](t, resp))
	assert.Zero(t, e.mail.count())

	cookie := e.login(t)
	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/contacts", nil), cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Data []model.Contact
	}](t, resp)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Jane", body.Data[0].Name)
	assert.Equal(t, "call me", body.Data[0].Message)
}

func TestContact_Rejects(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, jsonReq(http.MethodPost, "/api/contacts", map[string]string{
		"name": "Jane", "email": "not-an-email", "phone": "0912345678",
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = e.do(t, jsonReq(http.MethodPost, "/api/contacts", map[string]string{
		"name": "Jane", "email": "jane@x.com", "phone": "12345678901234",
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, e.mail.count())
}

func TestContact_SearchPageAndExport(t *testing.T) {
	e := newEnv(t)
	for i := range 12 {
		e.contacts.insert(&model.Contact{
			Name: "Lead " + string(rune('A'+i)), Email: "lead@x.com", Phone: "0912345678",
			Project: "Vinhome", CreatedAt: time.Now(),
		})
	}
	e.contacts.insert(&model.Contact{Name: "Other", Email: "o@x.com", Phone: "0912345678", Project: "Masteri"})
	cookie := e.login(t)

	resp := e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/contacts?q=vinhome&page=2", nil), cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[struct {
		Data       []model.Contact
		Total      int
		Page       int
		TotalPages int
	}](t, resp)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Data, 2)

	// a page past the end snaps back to the first
	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/contacts?q=vinhome&page=9", nil), cookie))
	page = decode[struct {
		Data       []model.Contact
		Total      int
		Page       int
		TotalPages int
	}](t, resp)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Data, 10)

	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/api/contacts/export", nil), cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "contacts.csv")
	rows, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, contact.ExportHeader, rows[0])
	assert.Len(t, rows, 14)
}

// ---------------------------------------------------------------------------
// Projects and uploads
// ---------------------------------------------------------------------------

func TestProject_CreateAndFilter(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	body := map[string]string{"name": "Vinhomes Grand Park", "description": "d", "category": "apartment", "type": "on-sale"}
	resp := e.do(t, withCookie(jsonReq(http.MethodPost, "/api/projects", body), cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	p := decode[model.Project](t, resp)
	assert.Equal(t, "vinhomes-grand-park", p.Slug)

	resp = e.do(t, withCookie(jsonReq(http.MethodPost, "/api/projects", body), cookie))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = e.do(t, httptest.NewRequest(http.MethodGet, "/api/projects?category=apartment", nil))
	assert.Len(t, decode[[]model.Project](t, resp), 1)
	resp = e.do(t, httptest.NewRequest(http.MethodGet, "/api/projects?category=villa", nil))
	assert.Empty(t, decode[[]model.Project](t, resp))
}

func TestUpload_DisabledWithoutStorage(t *testing.T) {
	e := newEnv(t)
	cookie := e.login(t)

	resp := e.do(t, withCookie(jsonReq(http.MethodPost, "/api/uploads/images", map[string]string{
		"dataUrl": "data:image/png;base64,iVBORw0KGgo=",
	}), cookie))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ---------------------------------------------------------------------------
// Locale routing
// ---------------------------------------------------------------------------

func TestLocale_RootRedirect(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAcceptLanguage, "en-US,en;q=0.9")
	resp := e.do(t, req)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/en/home", resp.Header.Get(fiber.HeaderLocation))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAcceptLanguage, "en")
	req.AddCookie(&http.Cookie{Name: constants.LocaleCookieName, Value: "vi"})
	resp = e.do(t, req)
	assert.Equal(t, "/vi/home", resp.Header.Get(fiber.HeaderLocation))
}

func TestLocale_PrefixedAPI(t *testing.T) {
	e := newEnv(t)
	e.products.insert(&model.Product{Name: "X", Slug: "x", Area: "Q9"})

	resp := e.do(t, httptest.NewRequest(http.MethodGet, "/en/api/products/areas", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "en", resp.Header.Get(fiber.HeaderContentLanguage))
	assert.Equal(t, map[string][]string{"areas": {"Q9"}}, decode[map[string][]string](t, resp))
}

func TestLocale_AdminLoginRedirectsWhenSignedIn(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, httptest.NewRequest(http.MethodGet, "/vi/admin/login", nil))
	assert.NotEqual(t, http.StatusTemporaryRedirect, resp.StatusCode)

	cookie := e.login(t)
	resp = e.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/vi/admin/login", nil), cookie))
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/vi/admin/dashboard", resp.Header.Get(fiber.HeaderLocation))
}

func TestSystemRoutes(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = e.do(t, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, _ = io.Copy(io.Discard, resp.Body)
}
