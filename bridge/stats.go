package bridge

import (
	"time"

	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/golang/glog"
)

const idleWalletLimit = time.Hour

// Stats returns the count of the live objects per kind.
func (b *Bridge) Stats() map[errcode.Domain]int {
	return map[errcode.Domain]int{
		errcode.Schema:     b.schemas.Len(),
		errcode.CredDef:    b.credDefs.Len(),
		errcode.Wallet:     b.wallets.Len(),
		errcode.Connection: b.connections.Len(),
	}
}

// collectStats is run by the cron job.
func (b *Bridge) collectStats() {
	for kind, n := range b.Stats() {
		b.metrics.objects.WithLabelValues(kind.String()).Set(float64(n))
		glog.V(1).Infoln("live", kind, "objects:", n)
	}
	if idle := b.wallets.Idle(idleWalletLimit); len(idle) > 0 {
		glog.Warningln("wallets idle over", idleWalletLimit, ":", idle)
	}
}
