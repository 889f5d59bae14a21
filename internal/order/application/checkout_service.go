package application

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/mq"
)

// CheckoutService 把购物车转换为订单
type CheckoutService struct {
	repo      domain.CheckoutRepository
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(repo domain.CheckoutRepository, publisher domain.EventPublisher, m *metrics.Metrics) *CheckoutService {
	return &CheckoutService{repo: repo, publisher: publisher, metrics: m}
}

// Checkout 在一个事务内完成：锁定购物车、写收货与支付信息、写订单头、逐行扣减库存并写明细、清空购物车。
// 任一步失败整体回滚，库存、购物车与订单均保持原状。
func (s *CheckoutService) Checkout(ctx context.Context, cmd CheckoutCommand) (summary *OrderSummary, err error) {
	start := time.Now()
	defer func() {
		amount := 0.0
		if summary != nil {
			amount = summary.Order.Total.InexactFloat64()
		}
		s.metrics.RecordCheckout(checkoutResult(err), time.Since(start), amount)
	}()

	shipping, err := domain.NewShippingDetail(cmd.Address)
	if err != nil {
		return nil, err
	}
	payment, err := domain.NewPaymentDetail(cmd.CardNumber, cmd.CVV)
	if err != nil {
		return nil, err
	}

	var order *domain.Order
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		lines, err := s.repo.LockCartLines(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		if err := s.repo.SaveShippingDetail(txCtx, shipping); err != nil {
			return err
		}
		if err := s.repo.SavePaymentDetail(txCtx, payment); err != nil {
			return err
		}

		order, err = domain.NewOrder(cmd.UserID, shipping, payment, lines)
		if err != nil {
			return err
		}
		if err := s.repo.SaveOrder(txCtx, order); err != nil {
			return err
		}

		for i := range order.Lines {
			line := &order.Lines[i]
			if err := s.repo.DecrementStock(txCtx, *line.ItemID, line.Qty); err != nil {
				return err
			}
			if err := s.repo.SaveOrderLine(txCtx, order.ID, line); err != nil {
				return err
			}
		}

		cleared, err := s.repo.ClearCart(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if cleared != int64(len(lines)) {
			return domain.ErrCartChanged
		}
		return nil
	})
	if err != nil {
		if errorsx.KindOf(err) == errorsx.KindUnknown {
			return nil, errorsx.Store("checkout", err)
		}
		return nil, err
	}

	logger.Info(ctx, "order placed", "order_id", order.ID, "user_id", order.UserID, "total", order.Total.StringFixed(2))
	event := domain.OrderPlacedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total.StringFixed(2),
		Lines:     make([]domain.OrderLineEvent, 0, len(order.Lines)),
		Timestamp: time.Now(),
	}
	for _, l := range order.Lines {
		event.Lines = append(event.Lines, domain.OrderLineEvent{ItemID: *l.ItemID, Qty: l.Qty})
	}
	mq.PublishAsync(ctx, s.publisher, domain.OrderPlacedTopic, strconv.FormatUint(uint64(order.ID), 10), event)

	return toOrderSummary(order), nil
}

func checkoutResult(err error) string {
	switch errorsx.KindOf(err) {
	case errorsx.KindUnknown:
		if err == nil {
			return "success"
		}
		return "error"
	case errorsx.KindEmptyCart:
		return "empty_cart"
	case errorsx.KindInsufficientStock:
		return "insufficient_stock"
	case errorsx.KindValidation:
		return "invalid"
	case errorsx.KindConflict:
		return "conflict"
	default:
		return "error"
	}
}
