package service

import (
	"context"
	"errors"
	"log"
	"time"

	"cart-api/internal/cache"
	"cart-api/internal/domain"
	"cart-api/internal/repository"
	"golang.org/x/sync/singleflight"
)

// CartService owns the cart mutation logic. Every mutation is a plain
// load-modify-save: the document is read, transformed in memory and written
// back whole. Two concurrent mutations for the same user can therefore lose
// an update; singleflight below only collapses concurrent reads.
type CartService struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
	}
}

// GetCart returns the user's cart, creating and persisting an empty one on
// first fetch.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) {
			// first fetch creates the document
			cart = &domain.Cart{
				UserID: userID,
				Items:  []domain.CartItem{},
			}
			if errUpsert := s.repo.UpsertCart(ctx, cart); errUpsert != nil {
				return nil, errUpsert
			}
		} else if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), userID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem merges the incoming item into the cart. An item matching an
// existing (id, size, color) variant increments that line's quantity;
// anything else is appended as a new line. A missing cart is created.
func (s *CartService) AddItem(ctx context.Context, userID string, item domain.CartItem) (*domain.Cart, error) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	cart, err := s.repo.GetCart(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		cart = &domain.Cart{
			UserID: userID,
			Items:  []domain.CartItem{},
		}
	} else if err != nil {
		log.Printf("repo get cart error: %v \n", err)
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].SameVariant(item) {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v \n", err)
		return nil, err
	}

	invalidateCache(s, userID)
	return cart, nil
}

// UpdateQuantity sets the quantity of the first line whose product id
// matches, whatever its size or color. Quantity is clamped to a minimum
// of 1. The cart and the line must already exist.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID, quantity int) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, repository.ErrItemNotFound
	}

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v \n", err)
		return nil, err
	}

	invalidateCache(s, userID)
	return cart, nil
}

// RemoveItem drops every line sharing the product id, across all size and
// color variants. Removing an id that isn't in the cart is a no-op, but the
// cart itself must exist.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := make([]domain.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v \n", err)
		return nil, err
	}

	invalidateCache(s, userID)
	return cart, nil
}

// ClearCart empties the items but keeps the document. Unlike GetCart it
// does not create a missing cart; that asymmetry is inherited behavior.
func (s *CartService) ClearCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = []domain.CartItem{}

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v \n", err)
		return nil, err
	}

	invalidateCache(s, userID)
	return cart, nil
}

func invalidateCache(s *CartService, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, userID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v \n", errInvalidate)
	}
}
