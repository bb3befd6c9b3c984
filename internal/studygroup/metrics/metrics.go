package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the study group module.
// Tracks membership changes and the duration of the member-prefix queries.
type Metrics struct {
	StudyGroupsCreated  prometheus.Counter
	UsersCreated        prometheus.Counter
	Joins               prometheus.Counter
	Leaves              prometheus.Counter
	MemberQueryDuration *prometheus.HistogramVec
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the module metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration panics.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StudyGroupsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "studygroups_created_total",
			Help: "Total number of study groups created",
		}),
		UsersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "studygroups_users_created_total",
			Help: "Total number of users created",
		}),
		Joins: factory.NewCounter(prometheus.CounterOpts{
			Name: "studygroups_joins_total",
			Help: "Total number of users added to a study group",
		}),
		Leaves: factory.NewCounter(prometheus.CounterOpts{
			Name: "studygroups_leaves_total",
			Help: "Total number of users removed from a study group",
		}),
		MemberQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studygroups_member_prefix_query_duration_seconds",
			Help:    "Duration of member-name prefix queries by strategy (scan or store)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"strategy"}),
	}
}

// IncrementStudyGroupsCreated records a successful study group creation.
func (m *Metrics) IncrementStudyGroupsCreated() {
	m.StudyGroupsCreated.Inc()
}

func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementJoins() {
	m.Joins.Inc()
}

func (m *Metrics) IncrementLeaves() {
	m.Leaves.Inc()
}

// ObserveMemberQuery records the duration of a member-prefix query.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveMemberQuery(strategy string, start time.Time) {
	m.MemberQueryDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
}
