package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex order_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateOrderNo returns a human-facing order number, e.g. ORD-20240101-XY12AB8Q.
// The date segment keeps numbers roughly sortable for support staff.
func GenerateOrderNo(datePart string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ToUpper(strings.ReplaceAll(id, "-", ""))

	return fmt.Sprintf("ORD-%s-%s", datePart, id)
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_MEMBER             = "member"
	UUID_PREFIX_PRODUCT            = "prod"
	UUID_PREFIX_SKU                = "sku"
	UUID_PREFIX_COUPON             = "coupon"
	UUID_PREFIX_COUPON_RESERVATION = "cpnres"
	UUID_PREFIX_QUOTE              = "quote"
	UUID_PREFIX_PROMOTION          = "promo"
	UUID_PREFIX_ORDER              = "order"
	UUID_PREFIX_ORDER_LINE_ITEM    = "order_line"
	UUID_PREFIX_COMMISSION_RECORD  = "comm"
	UUID_PREFIX_LEVEL_CONFIG       = "levelcfg"
)
