package counter

import (
	"context"
	"strconv"

	"github.com/adityasampath/Imagify-Project/internal/pkg/cache"
)

const (
	generationsKey      = "imagify:counters:generations"
	creditedPaymentsKey = "imagify:counters:credited_payments"
)

// AddGeneration increments the running total of successful image generations.
func AddGeneration() error {
	_, err := cache.Incr(generationsKey)
	return err
}

// AddCreditedPayment increments the running total of credited checkout orders.
func AddCreditedPayment() error {
	_, err := cache.Incr(creditedPaymentsKey)
	return err
}

// Totals returns the current generation and credited payment counts.
// Missing keys count as zero.
func Totals() (generations int64, payments int64, err error) {
	ctx := context.Background()
	rdb := cache.GetClient()

	values, err := rdb.MGet(ctx, generationsKey, creditedPaymentsKey).Result()
	if err != nil {
		return 0, 0, err
	}
	parse := func(v interface{}) int64 {
		s, ok := v.(string)
		if !ok {
			return 0
		}
		n, perr := strconv.ParseInt(s, 10, 64)
		if perr != nil {
			return 0
		}
		return n
	}
	return parse(values[0]), parse(values[1]), nil
}
