// Package command сопоставляет имена slash-команд с обработчиками и формирует ответы вызывающему.
package command

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mmeshcher/marketplace-bot/internal/format"
	"github.com/mmeshcher/marketplace-bot/internal/metrics"
	"github.com/mmeshcher/marketplace-bot/internal/model"
	"github.com/mmeshcher/marketplace-bot/internal/service"
	"github.com/mmeshcher/marketplace-bot/internal/validation"
)

const notImplementedReply = "Command not implemented."

// Service определяет контракт бизнес-логики, используемой обработчиками команд.
type Service interface {
	SubmitVouch(ctx context.Context, actor model.Actor, in service.VouchInput) (model.Vouch, error)
	PostProduct(ctx context.Context, actor model.Actor, channelID string, in service.ProductInput) (model.Product, error)
	PostPromo(ctx context.Context, actor model.Actor, channelID, title, content, imageURL string) error
	ToggleFeatured(ctx context.Context, actor model.Actor, id string) (model.Product, error)
	RemoveProduct(ctx context.Context, actor model.Actor, id string) error
	RemoveVouch(ctx context.Context, actor model.Actor, id string) error
	Announce(ctx context.Context, actor model.Actor, channelID, title, content string) error
	CreateCoupon(ctx context.Context, actor model.Actor, code string, percent int64) (model.Coupon, error)
}

// Options содержит значения опций, уже приведённые платформой к строке, целому числу,
// URL вложения или идентификатору пользователя.
type Options map[string]any

// String возвращает строковое значение опции или пустую строку.
func (o Options) String(name string) string {
	s, _ := o[name].(string)
	return s
}

// Int возвращает целочисленное значение опции.
func (o Options) Int(name string) (int64, bool) {
	switch v := o[name].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// Invocation описывает один вызов команды.
type Invocation struct {
	Name      string
	Actor     model.Actor
	ChannelID string
	Options   Options
}

// Response содержит ответ вызывающему: текст или оформленное сообщение.
type Response struct {
	Content string
	Embed   *format.Message
}

// HandlerFunc обрабатывает вызов команды.
type HandlerFunc func(ctx context.Context, inv Invocation) (Response, error)

// Dispatcher выбирает обработчик по имени команды.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   *zap.Logger
	metrics  *metrics.Registry
}

// NewDispatcher создаёт диспетчер со всеми командами бота.
func NewDispatcher(s Service, logger *zap.Logger, m *metrics.Registry) *Dispatcher {
	h := &handlers{service: s}

	return &Dispatcher{
		handlers: map[string]HandlerFunc{
			NameVouch:          h.vouch,
			NameProduct:        h.product,
			NamePromo:          h.promo,
			NameFeatureProduct: h.featureProduct,
			NameRemoveProduct:  h.removeProduct,
			NameRemoveVouch:    h.removeVouch,
			NameAnnounce:       h.announce,
			NameCouponCreate:   h.couponCreate,
			NameHelp:           h.help,
		},
		logger:  logger,
		metrics: m,
	}
}

// Names возвращает отсортированные имена зарегистрированных команд.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch выполняет команду и возвращает ответ для вызывающего.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) Response {
	h, ok := d.handlers[inv.Name]
	if !ok {
		d.logger.Warn("unknown command", zap.String("command", inv.Name))
		d.metrics.ObserveCommand(inv.Name, metrics.OutcomeRejected)
		return Response{Content: notImplementedReply}
	}

	resp, err := h(ctx, inv)
	if err == nil {
		d.metrics.ObserveCommand(inv.Name, metrics.OutcomeOK)
		return resp
	}

	reply, outcome := replyForError(inv.Name, err)
	switch outcome {
	case metrics.OutcomeRejected:
		d.logger.Info("command rejected",
			zap.String("command", inv.Name), zap.String("actor", inv.Actor.ID), zap.Error(err))
	default:
		if errors.Is(err, service.ErrPostFailed) {
			d.metrics.ObservePostFailure(inv.Name)
		}
		d.logger.Error("command failed",
			zap.String("command", inv.Name), zap.String("actor", inv.Actor.ID), zap.Error(err))
	}
	d.metrics.ObserveCommand(inv.Name, outcome)

	return Response{Content: reply}
}

var postFailureReplies = map[string]string{
	NameVouch:    "❌ Failed to post vouch. Check bot permissions.",
	NameProduct:  "❌ Failed to post product. Check bot permissions.",
	NamePromo:    "❌ Failed to post promo. Check bot permissions.",
	NameAnnounce: "❌ Failed to post announcement. Check permissions.",
}

func replyForError(name string, err error) (string, string) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return "❌ Admin required.", metrics.OutcomeRejected
	case errors.Is(err, service.ErrProductNotFound):
		return "❌ Product not found.", metrics.OutcomeRejected
	case errors.Is(err, service.ErrVouchNotFound):
		return "❌ Vouch not found.", metrics.OutcomeRejected
	case errors.Is(err, service.ErrInvalidPercent):
		return fmt.Sprintf("❌ Percent must be %d-%d.", validation.MinPercent, validation.MaxPercent), metrics.OutcomeRejected
	case errors.Is(err, validation.ErrInvalidRating):
		return fmt.Sprintf("❌ Rating must be a number from %d to %d.", validation.MinRating, validation.MaxRating), metrics.OutcomeRejected
	case errors.Is(err, service.ErrPostFailed):
		if reply, ok := postFailureReplies[name]; ok {
			return reply, metrics.OutcomeFailed
		}
	}
	return "❌ Something went wrong, please try again later.", metrics.OutcomeFailed
}
