// Package issuance hands paid policies to the certificate, invoice and email workers.
package issuance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appconfig "policy_checkout/internal/config"
	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const DefaultSubject = "policy.issue"

type publisher interface {
	PublishMsg(m *nats.Msg) error
	FlushWithContext(ctx context.Context) error
}

var _ publisher = (*nats.Conn)(nil)

// NATSIssuer publishes the issuance document and waits for the server to
// acknowledge the flush, so a lost connection surfaces as an error.
type NATSIssuer struct {
	conn    publisher
	subject string
	log     *logrus.Entry
}

var _ interfaces.IPolicyIssuer = (*NATSIssuer)(nil)

func Connect(cfg appconfig.NATSConfig) (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("policy-checkout"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logrus.WithError(err).Warn("[issuance][nats] disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logrus.WithField("url", nc.ConnectedUrl()).Info("[issuance][nats] reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

func NewNATSIssuer(conn publisher, subject string) *NATSIssuer {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSIssuer{conn: conn, subject: subject, log: logrus.WithField("component", "issuance")}
}

func (i *NATSIssuer) Issue(ctx context.Context, doc entities.IssuanceDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal issuance document: %w", err)
	}

	msg := nats.NewMsg(i.subject)
	msg.Data = data
	// JetStream streams use this header to drop duplicate hand-offs.
	msg.Header.Set(nats.MsgIdHdr, doc.PolicyNumber)

	if err := i.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish issuance: %w", err)
	}
	if err := i.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush issuance: %w", err)
	}
	i.log.WithFields(logrus.Fields{"quote_id": doc.PolicyNumber, "subject": i.subject}).Info("[issuance] policy handed off")
	return nil
}

// LogIssuer only logs the document. Used when NATS is not configured.
type LogIssuer struct {
	log *logrus.Entry
}

var _ interfaces.IPolicyIssuer = (*LogIssuer)(nil)

func NewLogIssuer() *LogIssuer {
	return &LogIssuer{log: logrus.WithField("component", "issuance")}
}

func (i *LogIssuer) Issue(_ context.Context, doc entities.IssuanceDocument) error {
	i.log.WithFields(logrus.Fields{
		"quote_id":     doc.PolicyNumber,
		"registration": doc.Registration,
		"premium":      doc.Premium.StringFixed(2),
		"currency":     doc.Currency,
	}).Info("[issuance] policy issued (log only)")
	return nil
}
