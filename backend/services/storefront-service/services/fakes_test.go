package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- in-memory order repository ----

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]*models.Order
	createErr error
	findErr   error
	created   int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*models.Order{}}
}

func (r *fakeOrderRepo) add(o models.Order) *models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.orders[o.ID.Hex()] = &o
	return &o
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = primitive.NewObjectID()
	cp := *order
	r.orders[order.ID.Hex()] = &cp
	r.created++
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id string) (*models.Order, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.sorted() {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]models.Order, error) {
	return r.sorted(), nil
}

func (r *fakeOrderRepo) Find(_ context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.sorted() {
		if !filter.Since.IsZero() && o.OrderDate.Before(filter.Since) {
			continue
		}
		if filter.ExcludeStatus != "" && o.Status == filter.ExcludeStatus {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) ApplyStatusChange(_ context.Context, id string, change models.StatusChange) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = change.Status
	if change.DeliveryBoy != nil {
		o.DeliveryBoy = change.DeliveryBoy
	}
	if change.DeliveryWindow != "" {
		o.DeliveryWindow = change.DeliveryWindow
	}
	if change.EstimatedDelivery != nil {
		o.EstimatedDelivery = change.EstimatedDelivery
	}
	if change.CancellationReason != "" {
		o.CancellationReason = change.CancellationReason
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) UpdateDelivery(_ context.Context, id string, u models.DeliveryUpdate) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.EstimatedDelivery != nil {
		o.EstimatedDelivery = u.EstimatedDelivery
	}
	if u.DeliveryWindow != nil {
		o.DeliveryWindow = *u.DeliveryWindow
	}
	if u.DeliveryBoy != nil {
		o.DeliveryBoy = u.DeliveryBoy
	}
	if u.DeliveryCharges != nil {
		o.DeliveryCharges = *u.DeliveryCharges
	}
	if u.CancellationReason != nil {
		o.CancellationReason = *u.CancellationReason
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) Count(_ context.Context, status string) (int64, error) {
	var n int64
	for _, o := range r.sorted() {
		if status == "" || o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) sorted() []models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out
}

// ---- in-memory product repository ----

type fakeProductRepo struct {
	products map[string]*models.Product
	err      error
}

func newFakeProductRepo(products ...models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*models.Product{}}
	for _, p := range products {
		r.add(p)
	}
	return r
}

func (r *fakeProductRepo) add(p models.Product) *models.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID.Hex()] = &p
	return &p
}

func (r *fakeProductRepo) List(_ context.Context, category string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []string) (map[string]models.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := map[string]models.Product{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = *p
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	cp := *product
	r.products[product.ID.Hex()] = &cp
	return nil
}

func (r *fakeProductRepo) Replace(_ context.Context, id string, product *models.Product) (*models.Product, error) {
	old, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *product
	cp.ID = old.ID
	r.products[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

// ---- in-memory category repository ----

type fakeCategoryRepo struct {
	categories map[string]*models.Category
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[string]*models.Category{}}
	for i, name := range names {
		c := models.Category{ID: primitive.NewObjectID(), Name: name, DisplayOrder: i + 1, IsActive: true}
		r.categories[c.ID.Hex()] = &c
	}
	return r
}

func (r *fakeCategoryRepo) List(_ context.Context, activeOnly bool) ([]models.Category, error) {
	var out []models.Category
	for _, c := range r.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id string) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) FindByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	if _, err := r.FindByName(ctx, category.Name); err == nil {
		return repository.ErrDuplicate
	}
	category.ID = primitive.NewObjectID()
	cp := *category
	r.categories[category.ID.Hex()] = &cp
	return nil
}

func (r *fakeCategoryRepo) Replace(_ context.Context, id string, category *models.Category) (*models.Category, error) {
	old, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *category
	cp.ID = old.ID
	r.categories[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// ---- in-memory user repository ----

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.add(u)
	}
	return r
}

func (r *fakeUserRepo) add(u models.User) *models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID.Hex()] = &u
	return &u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return repository.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	r.users[user.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListCustomers(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if !u.IsAdmin {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountCustomers(ctx context.Context) (int64, error) {
	list, _ := r.ListCustomers(ctx)
	return int64(len(list)), nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id string, req models.UpdateProfileRequest) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Avatar != nil {
		u.Avatar = *req.Avatar
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) SetBlocked(_ context.Context, id string, blocked bool) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsBlocked = blocked
	cp := *u
	return &cp, nil
}

// ---- in-memory cart repository ----

type fakeCartRepo struct {
	carts map[string]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*models.Cart{}}
}

func (r *fakeCartRepo) FindByUserID(_ context.Context, userID string) (*models.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCartRepo) ReplaceItems(_ context.Context, userID string, items []models.LineItem) (*models.Cart, error) {
	c := &models.Cart{UserID: userID, Items: append([]models.LineItem(nil), items...), UpdatedAt: time.Now()}
	r.carts[userID] = c
	cp := *c
	return &cp, nil
}

func (r *fakeCartRepo) Delete(_ context.Context, userID string) error {
	delete(r.carts, userID)
	return nil
}

// ---- in-memory contact repository ----

type fakeContactRepo struct {
	contact *models.Contact
}

func (r *fakeContactRepo) Get(_ context.Context) (*models.Contact, error) {
	if r.contact == nil {
		return nil, repository.ErrNotFound
	}
	cp := *r.contact
	return &cp, nil
}

func (r *fakeContactRepo) Upsert(_ context.Context, contact *models.Contact) (*models.Contact, error) {
	cp := *contact
	r.contact = &cp
	out := cp
	return &out, nil
}

// ---- notifier and event recorders ----

type statusNotice struct {
	orderID  string
	old, new string
}

type recordingNotifier struct {
	mu       sync.Mutex
	created  []string
	changes  []statusNotice
	customer models.Customer
	err      error
}

func (n *recordingNotifier) OrderCreated(_ context.Context, order *models.Order, customer models.Customer) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, order.ID.Hex())
	n.customer = customer
	return n.err
}

func (n *recordingNotifier) StatusChanged(_ context.Context, order *models.Order, customer models.Customer, oldStatus string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, statusNotice{orderID: order.ID.Hex(), old: oldStatus, new: order.Status})
	n.customer = customer
	return n.err
}

type recordingEvents struct {
	events []models.OrderEvent
	err    error
}

func (e *recordingEvents) Publish(_ context.Context, evt models.OrderEvent) error {
	e.events = append(e.events, evt)
	return e.err
}

// ---- helpers ----

func ptr[T any](v T) *T { return &v }

func testAddress() *models.ShippingAddress {
	return &models.ShippingAddress{
		FullName: "Asha Rao",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Pune",
		State:    "Maharashtra",
		Pincode:  "411001",
	}
}
