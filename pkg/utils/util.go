package utils

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/speps/go-hashids/v2"
)

func PanicTrace(err interface{}) string {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%v\n", err)
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fmt.Fprintf(buf, "%s:%d (0x%x)\n", file, line, pc)
	}
	return buf.String()
}

// GenHashID 把雪花 ID 编码为短码
func GenHashID(salt string, id int64) string {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 8
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return strconv.FormatInt(id, 36)
	}
	e, err := h.EncodeInt64([]int64{id})
	if err != nil {
		return strconv.FormatInt(id, 36)
	}
	return e
}

// LoyaltyCouponCode 积分兑换券码: LOYALTY-<毫秒时间戳>-<短码>
func LoyaltyCouponCode(salt string, now time.Time, id int64) string {
	return fmt.Sprintf("LOYALTY-%d-%s", now.UnixMilli(), GenHashID(salt, id))
}

// GenerateOrderSn 订单号: 前缀 + 日期 + 雪花 ID
func GenerateOrderSn(prefix string, now time.Time, id int64) string {
	return fmt.Sprintf("%s%s%d", prefix, now.Format("20060102"), id)
}
