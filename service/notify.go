package service

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"Storefront/pkg/rocketmq"
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	TemplateOrderConfirmed = "order_confirmed"
	TemplateRewardRedeemed = "reward_redeemed"
)

// Notification 邮件通知，Data 为模板变量
type Notification struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     datatypes.JSON `json:"data"`
}

var (
	_ INotifier = (*LogNotifier)(nil)
	_ INotifier = (*MQNotifier)(nil)
)

type INotifier interface {
	Notify(ctx context.Context, n *Notification) error
}

// LogNotifier 只记录日志
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n *Notification) error {
	log.L.Info("notification",
		zap.String("to", n.To),
		zap.String("subject", n.Subject),
		zap.String("template", n.Template),
		zap.ByteString("data", n.Data),
	)
	return nil
}

// MQNotifier 把通知投递到 RocketMQ，由下游邮件服务消费
type MQNotifier struct {
	Producer *rocketmq.Producer
	Topic    string
}

func (m *MQNotifier) Notify(ctx context.Context, n *Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return m.Producer.SendMsg(ctx, m.Topic, body)
}

// NewNotifier 未启用 RocketMQ 时退化为日志通知
func NewNotifier(producer *rocketmq.Producer, cfg *config.RocketMQConfig) INotifier {
	if producer == nil || cfg == nil || !cfg.Enabled {
		return LogNotifier{}
	}
	return &MQNotifier{Producer: producer, Topic: cfg.NotifyTopic}
}

// sendNotification 事务提交后发送，失败只记日志
func sendNotification(ctx context.Context, notifier INotifier, n *Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(context.WithoutCancel(ctx), n); err != nil {
		log.L.Warn("send notification failed", zap.String("template", n.Template), zap.Error(err))
	}
}

func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return b
}
