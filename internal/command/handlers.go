package command

import (
	"context"
	"fmt"

	"github.com/mmeshcher/marketplace-bot/internal/format"
	"github.com/mmeshcher/marketplace-bot/internal/service"
)

type handlers struct {
	service Service
}

func (h *handlers) vouch(ctx context.Context, inv Invocation) (Response, error) {
	_, err := h.service.SubmitVouch(ctx, inv.Actor, service.VouchInput{
		SellerID: inv.Options.String("seller"),
		Rating:   inv.Options.String("rating"),
		Product:  inv.Options.String("product"),
		Price:    inv.Options.String("price"),
		Message:  inv.Options.String("message"),
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Content: "✅ Your vouch has been posted successfully!"}, nil
}

func (h *handlers) product(ctx context.Context, inv Invocation) (Response, error) {
	p, err := h.service.PostProduct(ctx, inv.Actor, inv.ChannelID, service.ProductInput{
		Title:       inv.Options.String("title"),
		Description: inv.Options.String("description"),
		Features:    inv.Options.String("features"),
		Price:       inv.Options.String("price"),
		BuyLink:     inv.Options.String("buy_link"),
		ImageURL:    inv.Options.String("image"),
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Content: fmt.Sprintf("✅ Product posted successfully! (ID: %s)", p.ID)}, nil
}

func (h *handlers) promo(ctx context.Context, inv Invocation) (Response, error) {
	err := h.service.PostPromo(ctx, inv.Actor, inv.ChannelID,
		inv.Options.String("title"),
		inv.Options.String("content"),
		inv.Options.String("image"),
	)
	if err != nil {
		return Response{}, err
	}
	return Response{Content: "✅ Promo posted!"}, nil
}

func (h *handlers) featureProduct(ctx context.Context, inv Invocation) (Response, error) {
	p, err := h.service.ToggleFeatured(ctx, inv.Actor, inv.Options.String("id"))
	if err != nil {
		return Response{}, err
	}

	state := "unfeatured"
	if p.Featured {
		state = "featured"
	}
	return Response{Content: fmt.Sprintf("✅ Product %s (ID: %s)", state, p.ID)}, nil
}

func (h *handlers) removeProduct(ctx context.Context, inv Invocation) (Response, error) {
	if err := h.service.RemoveProduct(ctx, inv.Actor, inv.Options.String("id")); err != nil {
		return Response{}, err
	}
	return Response{Content: "✅ Product removed."}, nil
}

func (h *handlers) removeVouch(ctx context.Context, inv Invocation) (Response, error) {
	if err := h.service.RemoveVouch(ctx, inv.Actor, inv.Options.String("id")); err != nil {
		return Response{}, err
	}
	return Response{Content: "✅ Vouch removed."}, nil
}

func (h *handlers) announce(ctx context.Context, inv Invocation) (Response, error) {
	err := h.service.Announce(ctx, inv.Actor, inv.ChannelID,
		inv.Options.String("title"),
		inv.Options.String("content"),
	)
	if err != nil {
		return Response{}, err
	}
	return Response{Content: "✅ Announcement posted."}, nil
}

func (h *handlers) couponCreate(ctx context.Context, inv Invocation) (Response, error) {
	percent, _ := inv.Options.Int("percent")

	c, err := h.service.CreateCoupon(ctx, inv.Actor, inv.Options.String("code"), percent)
	if err != nil {
		return Response{}, err
	}
	return Response{Content: fmt.Sprintf("✅ Coupon created: `%s` — %d%% off", c.Code, c.Percent)}, nil
}

func (h *handlers) help(ctx context.Context, inv Invocation) (Response, error) {
	msg := format.Help(helpLines())
	return Response{Embed: &msg}, nil
}
