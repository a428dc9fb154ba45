package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder métricas Prometheus del ledger de stock. El host de la aplicación
// decide dónde exponerlas (endpoint /metrics u otro colector); el ledger solo
// las incrementa.
type Recorder struct {
	movements  *prometheus.CounterVec
	rejections *prometheus.CounterVec
	txRetries  prometheus.Counter
}

// NewRecorder crea las métricas y las registra en el Registerer dado
// (prometheus.DefaultRegisterer en producción, uno propio en tests).
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hemostock",
			Name:      "movements_total",
			Help:      "Movimientos de stock confirmados, por dirección.",
		}, []string{"direction"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hemostock",
			Name:      "rejections_total",
			Help:      "Operaciones rechazadas sin efectos, por motivo.",
		}, []string{"reason"}),
		txRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hemostock",
			Name:      "tx_retries_total",
			Help:      "Reintentos de transacción por conflicto de escritura.",
		}),
	}
	reg.MustRegister(r.movements, r.rejections, r.txRetries)
	return r
}

// Nop crea un Recorder sin registrar (las métricas se descartan).
// Útil en tests que no verifican instrumentación.
func Nop() *Recorder {
	return NewRecorder(prometheus.NewRegistry())
}

// MovementApplied cuenta un movimiento confirmado. delta > 0 entrada, < 0 salida.
func (r *Recorder) MovementApplied(delta int) {
	direction := "in"
	if delta < 0 {
		direction = "out"
	}
	r.movements.WithLabelValues(direction).Inc()
}

// Rejected cuenta una operación rechazada con el motivo dado
// (not_found, insufficient_stock, insufficient_batch_stock, invalid_input...).
func (r *Recorder) Rejected(reason string) {
	r.rejections.WithLabelValues(reason).Inc()
}

// TxRetried cuenta un reintento por ErrConflict.
func (r *Recorder) TxRetried() {
	r.txRetries.Inc()
}
