package rocketmq

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"context"
	"fmt"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// Producer 对 rocketmq.Producer 的薄封装，未启用时为 nil
type Producer struct {
	producer rocketmq.Producer
}

func InitProducer(cfg *config.RocketMQConfig) (*Producer, func(), error) {
	if cfg == nil || !cfg.Enabled {
		return nil, func() {}, nil
	}

	p, err := rocketmq.NewProducer(
		producer.WithNsResolver(primitive.NewPassthroughResolver(cfg.NameServer)),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("new rocketmq producer: %w", err)
	}
	if err := p.Start(); err != nil {
		return nil, nil, fmt.Errorf("start rocketmq producer: %w", err)
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))

	cleanup := func() {
		if err := p.Shutdown(); err != nil {
			log.L.Warn("shutdown rocketmq producer", zap.Error(err))
		}
	}
	return &Producer{producer: p}, cleanup, nil
}

func (p *Producer) SendMsg(ctx context.Context, topic string, body []byte) error {
	msg := primitive.NewMessage(topic, body)

	// 发送同步消息
	res, err := p.producer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.String("topic", topic), zap.String("msg_id", res.MsgID))
	return nil
}
