// Package handler содержит HTTP-обработчики служебного API бота: проверку живости,
// метрики и чтение сохранённых товаров и отзывов.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/marketplace-bot/internal/model"
	"github.com/mmeshcher/marketplace-bot/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Products() []model.Product
	Product(id string) (model.Product, error)
	Vouches() []model.Vouch
	Vouch(id string) (model.Vouch, error)
}

// Handler реализует HTTP-обработчики служебного API.
type Handler struct {
	service Service
	logger  *zap.Logger
	metrics http.Handler
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
// metrics отдаёт метрики в формате Prometheus и может быть nil.
func NewHandler(s Service, logger *zap.Logger, metrics http.Handler) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
		metrics: metrics,
	}
}

// Health сообщает, что процесс жив.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GetProducts возвращает все товары в порядке добавления.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products := h.service.Products()
	if len(products) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, products)
}

// GetProduct возвращает товар по идентификатору.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Product(chi.URLParam(r, "id"))
	if err != nil {
		h.writeLookupError(w, err, service.ErrProductNotFound)
		return
	}
	h.writeJSON(w, p)
}

// GetVouches возвращает все отзывы в порядке добавления.
func (h *Handler) GetVouches(w http.ResponseWriter, r *http.Request) {
	vouches := h.service.Vouches()
	if len(vouches) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, vouches)
}

// GetVouch возвращает отзыв по идентификатору.
func (h *Handler) GetVouch(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Vouch(chi.URLParam(r, "id"))
	if err != nil {
		h.writeLookupError(w, err, service.ErrVouchNotFound)
		return
	}
	h.writeJSON(w, v)
}

func (h *Handler) writeLookupError(w http.ResponseWriter, err, notFound error) {
	if errors.Is(err, notFound) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	h.logger.Error("lookup error", zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}
