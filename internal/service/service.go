// Package service реализует бизнес-логику маркетплейс-бота.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmeshcher/marketplace-bot/internal/format"
	"github.com/mmeshcher/marketplace-bot/internal/ident"
	"github.com/mmeshcher/marketplace-bot/internal/metrics"
	"github.com/mmeshcher/marketplace-bot/internal/model"
	"github.com/mmeshcher/marketplace-bot/internal/store"
	"github.com/mmeshcher/marketplace-bot/internal/validation"
)

const (
	vouchIDPrefix   = "v_"
	productIDPrefix = "p_"
	couponIDPrefix  = "c_"
)

var (
	// ErrPermissionDenied возвращается, если у пользователя нет прав администратора.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrProductNotFound возвращается, если товар с указанным идентификатором не найден.
	ErrProductNotFound = errors.New("product not found")
	// ErrVouchNotFound возвращается, если отзыв с указанным идентификатором не найден.
	ErrVouchNotFound = errors.New("vouch not found")
	// ErrInvalidPercent возвращается, если процент скидки вне диапазона 1-100.
	ErrInvalidPercent = errors.New("percent must be between 1 and 100")
	// ErrPostFailed возвращается, если платформа отклонила публикацию. Сохранённые данные при этом не откатываются.
	ErrPostFailed = errors.New("post failed")
)

// Collection описывает рабочую коллекцию записей.
type Collection[T store.Record] interface {
	All() []T
	Get(id string) (T, bool)
	Len() int
	Append(ctx context.Context, rec T) error
	Update(ctx context.Context, id string, fn func(*T)) (T, error)
	Remove(ctx context.Context, id string) (T, error)
}

// Messenger отправляет оформленные сообщения в канал.
type Messenger interface {
	Send(ctx context.Context, channelID string, msg format.Message) error
}

// IDGenerator выдаёт идентификаторы новых записей.
type IDGenerator interface {
	NewID(prefix string) string
}

// Service содержит бизнес-логику маркетплейс-бота.
type Service struct {
	products       Collection[model.Product]
	vouches        Collection[model.Vouch]
	messenger      Messenger
	vouchChannelID string

	ids     IDGenerator
	now     func() time.Time
	metrics *metrics.Registry
}

// Option настраивает Service.
type Option func(*Service)

// WithClock задаёт источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator задаёт генератор идентификаторов.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Service) { s.ids = ids }
}

// WithMetrics подключает реестр метрик.
func WithMetrics(m *metrics.Registry) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService создаёт сервис над коллекциями товаров и отзывов.
// Отзывы публикуются в канал vouchChannelID, остальные сообщения в канал вызова.
func NewService(
	products Collection[model.Product],
	vouches Collection[model.Vouch],
	messenger Messenger,
	vouchChannelID string,
	opts ...Option,
) *Service {
	s := &Service{
		products:       products,
		vouches:        vouches,
		messenger:      messenger,
		vouchChannelID: vouchChannelID,
		ids:            ident.NewGenerator(nil),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.metrics.SetRecords("products", products.Len())
	s.metrics.SetRecords("vouches", vouches.Len())
	return s
}

// IsPrivileged сообщает, есть ли у пользователя хотя бы одно из административных прав.
func IsPrivileged(caps model.Capability) bool {
	return caps.Has(model.CapabilityAdministrator | model.CapabilityManageGuild | model.CapabilityManageMessages)
}

// VouchInput содержит параметры отзыва.
type VouchInput struct {
	SellerID string
	Rating   string
	Product  string
	Price    string
	Message  string
}

// SubmitVouch сохраняет отзыв и публикует его в канал отзывов.
func (s *Service) SubmitVouch(ctx context.Context, actor model.Actor, in VouchInput) (model.Vouch, error) {
	rating, err := validation.ParseRating(in.Rating)
	if err != nil {
		return model.Vouch{}, err
	}

	message := in.Message
	if message == "" {
		message = model.VouchMessagePlaceholder
	}

	v := model.Vouch{
		ID:        s.ids.NewID(vouchIDPrefix),
		AuthorID:  actor.ID,
		SellerID:  in.SellerID,
		Rating:    rating,
		Product:   in.Product,
		Price:     in.Price,
		Message:   message,
		Timestamp: s.now().UTC(),
	}

	if err := s.vouches.Append(ctx, v); err != nil {
		return model.Vouch{}, err
	}
	s.metrics.SetRecords("vouches", s.vouches.Len())

	if err := s.post(ctx, s.vouchChannelID, format.Vouch(v, actor)); err != nil {
		return v, err
	}
	return v, nil
}

// ProductInput содержит параметры карточки товара.
type ProductInput struct {
	Title       string
	Description string
	Features    string
	Price       string
	BuyLink     string
	ImageURL    string
}

// PostProduct сохраняет товар и публикует его карточку в канал вызова.
func (s *Service) PostProduct(ctx context.Context, actor model.Actor, channelID string, in ProductInput) (model.Product, error) {
	p := model.Product{
		ID:          s.ids.NewID(productIDPrefix),
		Title:       in.Title,
		Description: in.Description,
		Features:    validation.SplitFeatures(in.Features),
		Price:       in.Price,
		BuyLinkRaw:  in.BuyLink,
		ImageURL:    format.ImageOrBanner(in.ImageURL),
		AuthorID:    actor.ID,
		Timestamp:   s.now().UTC(),
	}

	if err := s.products.Append(ctx, p); err != nil {
		return model.Product{}, err
	}
	s.metrics.SetRecords("products", s.products.Len())

	if err := s.post(ctx, channelID, format.Product(p, actor)); err != nil {
		return p, err
	}
	return p, nil
}

// PostPromo публикует промо-сообщение в канал вызова. Ничего не сохраняет.
func (s *Service) PostPromo(ctx context.Context, actor model.Actor, channelID, title, content, imageURL string) error {
	return s.post(ctx, channelID, format.Promo(title, content, imageURL, actor, s.now()))
}

// ToggleFeatured переключает признак избранного товара.
func (s *Service) ToggleFeatured(ctx context.Context, actor model.Actor, id string) (model.Product, error) {
	if !IsPrivileged(actor.Capabilities) {
		return model.Product{}, ErrPermissionDenied
	}

	p, err := s.products.Update(ctx, id, func(p *model.Product) { p.Featured = !p.Featured })
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, err
	}
	return p, nil
}

// RemoveProduct удаляет товар по идентификатору.
func (s *Service) RemoveProduct(ctx context.Context, actor model.Actor, id string) error {
	if !IsPrivileged(actor.Capabilities) {
		return ErrPermissionDenied
	}

	if _, err := s.products.Remove(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.metrics.SetRecords("products", s.products.Len())
	return nil
}

// RemoveVouch удаляет отзыв по идентификатору.
func (s *Service) RemoveVouch(ctx context.Context, actor model.Actor, id string) error {
	if !IsPrivileged(actor.Capabilities) {
		return ErrPermissionDenied
	}

	if _, err := s.vouches.Remove(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrVouchNotFound
		}
		return err
	}
	s.metrics.SetRecords("vouches", s.vouches.Len())
	return nil
}

// Announce публикует объявление в канал вызова.
func (s *Service) Announce(ctx context.Context, actor model.Actor, channelID, title, content string) error {
	if !IsPrivileged(actor.Capabilities) {
		return ErrPermissionDenied
	}
	return s.post(ctx, channelID, format.Announcement(title, content, actor, s.now()))
}

// CreateCoupon создаёт купон на скидку. Купон не сохраняется.
func (s *Service) CreateCoupon(ctx context.Context, actor model.Actor, code string, percent int64) (model.Coupon, error) {
	if !IsPrivileged(actor.Capabilities) {
		return model.Coupon{}, ErrPermissionDenied
	}
	if !validation.ValidPercent(percent) {
		return model.Coupon{}, ErrInvalidPercent
	}

	// TODO: сохранять купоны в отдельную коллекцию, когда появится команда их погашения.
	return model.Coupon{
		ID:        s.ids.NewID(couponIDPrefix),
		Code:      validation.NormalizeCouponCode(code),
		Percent:   percent,
		CreatedBy: actor.ID,
		CreatedAt: s.now().UTC(),
	}, nil
}

// Products возвращает все товары в порядке добавления.
func (s *Service) Products() []model.Product {
	return s.products.All()
}

// Product возвращает товар по идентификатору.
func (s *Service) Product(id string) (model.Product, error) {
	p, ok := s.products.Get(id)
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Vouches возвращает все отзывы в порядке добавления.
func (s *Service) Vouches() []model.Vouch {
	return s.vouches.All()
}

// Vouch возвращает отзыв по идентификатору.
func (s *Service) Vouch(id string) (model.Vouch, error) {
	v, ok := s.vouches.Get(id)
	if !ok {
		return model.Vouch{}, ErrVouchNotFound
	}
	return v, nil
}

func (s *Service) post(ctx context.Context, channelID string, msg format.Message) error {
	if err := s.messenger.Send(ctx, channelID, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrPostFailed, err)
	}
	return nil
}
