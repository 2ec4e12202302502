package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
	"github.com/agors/historiography/internal/core/service"
	"github.com/agors/historiography/internal/infrastructure/db/jsonfile"
)

type harness struct {
	t      *testing.T
	dir    string
	stores *jsonfile.Stores
	svc    Services
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessIn(t, t.TempDir())
}

func newHarnessIn(t *testing.T, dir string) *harness {
	t.Helper()
	log := zerolog.Nop()
	stores := jsonfile.Open(jsonfile.Config{Dir: dir}, log)
	return &harness{
		t:      t,
		dir:    dir,
		stores: stores,
		svc: Services{
			Auth:     service.NewAuthService(stores.Accounts, "", log),
			Accounts: service.NewAccountService(stores.Accounts, log),
			Places:   service.NewPlaceService(stores.Places, log),
			Reviews:  service.NewReviewService(stores.Reviews, log),
		},
	}
}

func (h *harness) register(username, email, password string, role domain.Role) {
	h.t.Helper()
	_, err := h.svc.Auth.Register(context.Background(), ports.RegisterInput{
		Username: username, Email: email, Password: password, Role: role,
	})
	require.NoError(h.t, err)
}

func (h *harness) addPlace(name string) domain.Place {
	h.t.Helper()
	p := &domain.Place{Name: name, Description: "About " + name, Location: "Ukraine", Category: "City"}
	require.NoError(h.t, h.stores.Places.Add(context.Background(), p))
	return *p
}

// result is what the session looked like when the key script ran out.
type result struct {
	c       *Controller
	d       *fakeDisplay
	state   State
	session Session
}

// run plays keys after dismissing the greeting.
func (h *harness) run(keys ...KeyEvent) result {
	h.t.Helper()
	d := newFakeDisplay(append([]KeyEvent{enter}, keys...)...)
	c := NewController(d, h.svc, zerolog.Nop(), Options{SuccessDelay: time.Second, Pause: func(time.Duration) {}})

	res := result{c: c, d: d}
	observing := &observer{fakeDisplay: d, observe: func() {
		res.state = c.State()
		res.session = c.Session()
	}}
	c.display = observing

	require.NoError(h.t, c.Run(context.Background()))
	return res
}

// observer snapshots the controller before every key read.
type observer struct {
	*fakeDisplay
	observe func()
}

func (o *observer) ReadKey(ctx context.Context) (KeyEvent, error) {
	o.observe()
	return o.fakeDisplay.ReadKey(ctx)
}

func loginKeys(identifier, password string) []KeyEvent {
	return script(down, enter, text(identifier), down, text(password), down, enter)
}

func adminKeys() []KeyEvent {
	return script(loginKeys("root", "rootpass"), text(domain.DefaultAdminKey), down, enter)
}

func TestRun_GreetingThenMainMenu(t *testing.T) {
	h := newHarness(t)
	res := h.run()

	require.GreaterOrEqual(t, len(res.d.frames), 2)
	assert.Contains(t, res.d.frames[0], "Welcome to Historiography")
	assert.Contains(t, res.d.frames[1], "MAIN MENU")
	assert.Equal(t, StateMainMenu, res.state)
	assert.Equal(t, StateExit, res.c.State())
}

func TestRun_ExitFromMainMenu(t *testing.T) {
	h := newHarness(t)
	d := newFakeDisplay(enter, up, enter, enter, enter)
	c := NewController(d, h.svc, zerolog.Nop(), Options{Pause: func(time.Duration) {}})

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, StateExit, c.State())
	assert.Len(t, d.keys, 2, "nothing is read after Exit")
}

func TestRun_Rules(t *testing.T) {
	h := newHarness(t)
	res := h.run(down, down, enter, Char('q'))

	assert.True(t, res.d.sawText("Usernames and emails are unique."))
	assert.Equal(t, StateMainMenu, res.state)
}

// Scenario A.
func TestRun_RegisterUser(t *testing.T) {
	h := newHarness(t)
	res := h.run(script(
		enter,
		text("alice"), down,
		text("alice@x.com"), down,
		text("secret1"), down,
		down, enter,
	)...)

	assert.True(t, res.d.sawText("Account alice created"))
	assert.Equal(t, StateMainMenu, res.state)

	stored, err := jsonfile.NewAccountRepository(filepath.Join(h.dir, jsonfile.UsersFile), zerolog.Nop()).
		FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role)
	assert.Equal(t, "alice@x.com", stored.Email)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRun_RegisterAdminRoleAndDuplicates(t *testing.T) {
	h := newHarness(t)
	h.register("alice", "alice@x.com", "secret1", domain.RoleUser)

	res := h.run(script(
		enter,
		text("bob"), down,
		text("alice@x.com"), down,
		text("secret1"), down,
		right, down, enter,
	)...)

	assert.Contains(t, res.d.lastFrame(), "email already registered")
	assert.Contains(t, res.d.lastFrame(), "< Admin >")
	assert.Equal(t, StateRegistration, res.state)

	accounts, err := h.stores.Accounts.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestRun_RegisterValidationOrder(t *testing.T) {
	h := newHarness(t)
	res := h.run(script(enter, text("a b"), down, down, text("123456"), down, down, enter)...)

	assert.Contains(t, res.d.lastFrame(), "email is required")
}

// Scenario B.
func TestRun_LoginWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.register("alice", "alice@x.com", "secret1", domain.RoleUser)

	res := h.run(loginKeys("alice", "wrongpw")...)

	assert.Contains(t, res.d.lastFrame(), "invalid credentials")
	assert.Contains(t, res.d.lastFrame(), "*******", "typed password is kept")
	assert.Equal(t, StateLogin, res.state)
	assert.Equal(t, domain.SessionAnonymous, res.session.Role)
	assert.Nil(t, res.session.Principal)
}

func TestRun_LoginByEmail(t *testing.T) {
	h := newHarness(t)
	h.register("alice", "alice@x.com", "secret1", domain.RoleUser)

	res := h.run(loginKeys("alice@x.com", "secret1")...)

	assert.True(t, res.d.sawText("Welcome, alice!"))
	assert.Equal(t, StateUserMenu, res.state)
	assert.Equal(t, domain.SessionUser, res.session.Role)
	assert.Equal(t, "alice", res.session.Username())
}

func TestRun_AdminKey(t *testing.T) {
	h := newHarness(t)
	h.register("root", "root@x.com", "rootpass", domain.RoleAdmin)

	wrong := h.run(script(loginKeys("root", "rootpass"), text("1234"), down, enter)...)
	assert.Contains(t, wrong.d.lastFrame(), "invalid admin key")
	assert.Equal(t, StateAdminKey, wrong.state)
	assert.Equal(t, domain.SessionAnonymous, wrong.session.Role)

	ok := h.run(adminKeys()...)
	assert.Equal(t, StateAdminMenu, ok.state)
	assert.Equal(t, domain.SessionAdmin, ok.session.Role)

	backed := h.run(script(loginKeys("root", "rootpass"), escape)...)
	assert.Equal(t, StateLogin, backed.state)
	assert.Nil(t, backed.session.pending)
}

// Scenario C.
func TestRun_AdminAddsPlace(t *testing.T) {
	h := newHarness(t)
	h.register("root", "root@x.com", "rootpass", domain.RoleAdmin)
	h.addPlace("Kyiv")
	h.addPlace("Odesa")
	h.addPlace("Chernihiv")

	res := h.run(script(
		adminKeys(),
		down, down, enter,
		text("Lviv"), down,
		text("Old town"), down,
		text("Ukraine"), down,
		text("City"), down,
		enter,
	)...)

	assert.True(t, res.d.sawText(`Place "Lviv" added with id 4.`))
	assert.Equal(t, StateAdminMenu, res.state)

	places, err := jsonfile.NewPlaceRepository(filepath.Join(h.dir, jsonfile.PlacesFile), zerolog.Nop()).
		All(context.Background())
	require.NoError(t, err)
	require.Len(t, places, 4)
	assert.Equal(t, domain.Place{ID: 4, Name: "Lviv", Description: "Old town", Location: "Ukraine", Category: "City"}, places[3])
}

func TestRun_AdminAddPlaceRequiresFields(t *testing.T) {
	h := newHarness(t)
	h.register("root", "root@x.com", "rootpass", domain.RoleAdmin)

	res := h.run(script(adminKeys(), down, down, enter, text("Lviv"), times(down, 4), enter)...)

	assert.Contains(t, res.d.lastFrame(), "description is required")
	assert.Equal(t, StatePlaceAdd, res.state)
	places, _ := h.stores.Places.All(context.Background())
	assert.Empty(t, places)
}

func TestRun_AdminEditsAndDeletesPlace(t *testing.T) {
	h := newHarness(t)
	h.register("root", "root@x.com", "rootpass", domain.RoleAdmin)
	lviv := h.addPlace("Lviv")

	res := h.run(script(
		adminKeys(),
		times(down, 3), enter, // Edit place
		enter,        // pick Lviv
		enter,        // Edit
		times(back, 4), text("Lemberg"), times(down, 4), enter,
		enter, down, enter, Char('y'),
	)...)

	assert.True(t, res.d.sawText("Place updated."))
	assert.Contains(t, res.d.lastFrame(), "Place deleted.")
	assert.Equal(t, StatePlacesList, res.state)

	_, err := h.stores.Places.Get(context.Background(), lviv.ID)
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

// Scenario D.
func TestRun_UserReviewsPlace(t *testing.T) {
	h := newHarness(t)
	h.register("alice", "alice@x.com", "secret1", domain.RoleUser)
	h.addPlace("Lviv")
	h.addPlace("Kyiv")

	res := h.run(script(
		loginKeys("alice", "secret1"),
		down, enter, // Reviews & ratings
		down, enter, // Add review
		text("lviv"), enter,
		text("Great"), down, text("9"), down, enter,
		down, enter,
		text("lviv"), enter,
		text("Great"), down, text("10"), down, enter,
	)...)

	assert.True(t, res.d.sawText("Review added. Thank you!"))
	assert.Contains(t, res.d.lastFrame(), "rating must be between 0 and 9")
	assert.Equal(t, StateReviewAdd, res.state)

	reviews, err := jsonfile.NewReviewRepository(filepath.Join(h.dir, jsonfile.ReviewsFile), zerolog.Nop()).
		All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Review{{ID: 1, PlaceName: "Lviv", Text: "Great", Rating: 9, Author: "alice"}}, reviews)
}

func TestRun_PlaceDetailShowsAverage(t *testing.T) {
	h := newHarness(t)
	h.register("alice", "alice@x.com", "secret1", domain.RoleUser)
	h.addPlace("Lviv")
	ctx := context.Background()
	_, err := h.svc.Reviews.Add(ctx, ports.ReviewInput{PlaceName: "Lviv", Text: "Great", Rating: 9, Author: "bob"})
	require.NoError(t, err)
	_, err = h.svc.Reviews.Add(ctx, ports.ReviewInput{PlaceName: "Lviv", Text: "Fine", Rating: 6, Author: "eve"})
	require.NoError(t, err)

	res := h.run(script(loginKeys("alice", "secret1"), enter, enter)...)

	assert.Contains(t, res.d.lastFrame(), "Average rating: 7.5 / 9 (2 reviews)")
	assert.Equal(t, StatePlaceDetail, res.state)
}

func TestRun_AdminManagesUsersAndReviews(t *testing.T) {
	h := newHarness(t)
	h.register("root", "root@x.com", "rootpass", domain.RoleAdmin)
	h.register("bob", "bob@x.com", "secret1", domain.RoleUser)
	_, err := h.svc.Reviews.Add(context.Background(), ports.ReviewInput{PlaceName: "Lviv", Text: "Meh", Rating: 2, Author: "bob"})
	require.NoError(t, err)

	res := h.run(script(
		adminKeys(),
		enter,            // Manage users: bob, root
		enter, Char('y'), // delete bob
		enter,            // root is protected
		escape,
		times(down, 4), enter, // Reviews
		enter, Char('y'),
	)...)

	assert.True(t, res.d.sawText("Account deleted."))
	assert.True(t, res.d.sawText("admin accounts cannot be deleted"))
	assert.Contains(t, res.d.lastFrame(), "Review deleted.")
	assert.Equal(t, StateReviewList, res.state)

	_, err = h.stores.Accounts.FindByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	_, err = h.stores.Accounts.FindByUsername(context.Background(), "root")
	assert.NoError(t, err)
	reviews, _ := h.stores.Reviews.All(context.Background())
	assert.Empty(t, reviews)
}

func TestRun_LogoutConfirmation(t *testing.T) {
	h := newHarness(t)
	h.register("alice", "alice@x.com", "secret1", domain.RoleUser)

	res := h.run(script(
		loginKeys("alice", "secret1"),
		down, down, enter, // Settings
		enter, Char('n'),
		enter, Char('y'),
	)...)

	assert.True(t, res.d.sawText("Cancelled, nothing changed."))
	assert.Contains(t, res.d.lastFrame(), "You have been logged out.")
	assert.Equal(t, StateMainMenu, res.state)
	assert.Equal(t, domain.SessionAnonymous, res.session.Role)
	assert.Nil(t, res.session.Principal)
}

func TestRun_StorageFailureIsReported(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	h := newHarnessIn(t, blocker)

	res := h.run(script(
		enter,
		text("alice"), down,
		text("alice@x.com"), down,
		text("secret1"), down,
		down, enter,
	)...)

	assert.Contains(t, res.d.lastFrame(), "could not save changes, nothing was written")
	assert.Equal(t, StateRegistration, res.state)
	_, err := h.stores.Accounts.FindByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGoTo_DeniedLandsOnMainMenu(t *testing.T) {
	h := newHarness(t)
	c := NewController(newFakeDisplay(), h.svc, zerolog.Nop(), Options{})

	c.goTo(context.Background(), StateAdminMenu)

	assert.Equal(t, StateMainMenu, c.State())
	msg, isErr := c.feedback.Pending()
	assert.True(t, isErr)
	assert.Equal(t, "access denied", msg)
}
