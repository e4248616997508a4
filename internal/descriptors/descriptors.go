// Package descriptors models the service/composition descriptors a
// vertex's originating ServiceCall ultimately resolves against:
// Service, PrimitiveService, and their attached SLA. None of this is
// consulted by the lowering pass itself — it is the shape the
// resource-extraction step (internal/resources) keys off of.
package descriptors

import (
	"fmt"

	"flowc/internal/types"
)

// ConsistencyLevel is a replication read/write consistency guarantee.
type ConsistencyLevel int

const (
	Any ConsistencyLevel = iota
	Eventual
	Causal
	Strong
)

func (c ConsistencyLevel) String() string {
	switch c {
	case Eventual:
		return "eventual"
	case Causal:
		return "causal"
	case Strong:
		return "strong"
	default:
		return "any"
	}
}

// PartitionKind is how a PrimitiveService's state is split across
// replicas.
type PartitionKind int

const (
	PartitionNone PartitionKind = iota
	PartitionFixed
	PartitionDynamic
)

func (k PartitionKind) String() string {
	switch k {
	case PartitionFixed:
		return "fixed"
	case PartitionDynamic:
		return "dynamic"
	default:
		return "none"
	}
}

// Properties carries the tri-state flags a Service may declare. A nil
// pointer means "unset" (the composer has no opinion), distinct from
// false ("explicitly not this").
type Properties struct {
	IsDeployedAlready *bool
	IsPrimitive       *bool
	IsPartitioned     *bool
	IsStateful        *bool
	IsReplicated      *bool
}

func boolPtr(v bool) *bool { return &v }

// SpecRecord is the deploy-spec bookkeeping attached to every Service:
// a main spec file plus the files it references, and the directory they
// were (or were not yet) extracted into. internal/resources.ExtractSpec
// is the sole writer of Directory.
type SpecRecord struct {
	Directory           string
	MainSpecFile        string
	ReferencedSpecFiles []string
}

// Files returns the ordered file list extraction copies: the main spec
// file followed by every referenced file, in declaration order.
func (r *SpecRecord) Files() []string {
	out := make([]string, 0, 1+len(r.ReferencedSpecFiles))
	out = append(out, r.MainSpecFile)
	out = append(out, r.ReferencedSpecFiles...)
	return out
}

// Service is a composable unit in the service graph: a package/URL/
// display identity, a mutable property record, and the spec record
// resource extraction keys off of. Build one with NewService and the
// fluent Package/AtURL/Stateful/DeployedAlready methods, then check Err() before handing it
// to the resource extractor. A builder call that fails a validation
// records the first error and becomes a no-op rather than panicking;
// later calls still run but no longer clear a recorded error.
type Service struct {
	PackageName string
	URL         string
	DisplayName string
	Properties  Properties
	Spec        *SpecRecord

	err error
}

// NewService starts a Service descriptor displayed as displayName, with
// no properties set and a spec record naming mainSpecFile plus any
// referencedSpecFiles.
func NewService(displayName, mainSpecFile string, referencedSpecFiles ...string) *Service {
	return &Service{
		DisplayName: displayName,
		Spec: &SpecRecord{
			MainSpecFile:        mainSpecFile,
			ReferencedSpecFiles: referencedSpecFiles,
		},
	}
}

// Err returns the first validation failure recorded by a builder call, or
// nil if every call so far has been consistent.
func (s *Service) Err() error { return s.err }

func (s *Service) fail(err error) *Service {
	if s.err == nil {
		s.err = err
	}
	return s
}

// Package sets the service's package name.
func (s *Service) Package(name string) *Service {
	s.PackageName = name
	return s
}

// AtURL sets the service's URL.
func (s *Service) AtURL(url string) *Service {
	s.URL = url
	return s
}

// Stateful marks the service as holding state (or explicitly not).
func (s *Service) Stateful(stateful bool) *Service {
	s.Properties.IsStateful = boolPtr(stateful)
	return s
}

// DeployedAlready marks the service as targeting an existing deployment
// rather than one the composer must provision.
func (s *Service) DeployedAlready(already bool) *Service {
	s.Properties.IsDeployedAlready = boolPtr(already)
	return s
}

// Validate enforces the invariants a Service descriptor must satisfy
// before it can be handed to resource extraction: no builder call failed
// (Err() == nil), a non-empty display name, and a named main spec file.
func (s *Service) Validate() error {
	if s.err != nil {
		return s.err
	}
	if s.DisplayName == "" {
		return fmt.Errorf("service descriptor has no display name")
	}
	if s.Spec == nil || s.Spec.MainSpecFile == "" {
		return fmt.Errorf("service %q has no main spec file", s.DisplayName)
	}
	return nil
}

// PrimitiveService is a Service with no further decomposition — a leaf
// of the composition graph carrying the placement, replication,
// consistency and partitioning attributes a composite Service has no
// opinion on.
type PrimitiveService struct {
	Service

	Name                string
	FullyQualifiedClass string
	ShortClass          string

	ReplicaMinDegree int
	ReplicaMaxDegree int
	ReadConsistency  ConsistencyLevel
	WriteConsistency ConsistencyLevel

	PartitionKeyType types.Type
	Partition        PartitionKind
	PartitionCount   int

	DataSourceURI    string
	ConfigurationURI string

	SLA *SLA
}

// NewPrimitiveService starts a PrimitiveService named name
// (fullyQualifiedClass/shortClass identify its implementing class),
// backed by the spec record named by mainSpecFile/referencedSpecFiles.
// Defaults match spec: consistency Any/Any, partition None, partition
// count 1.
func NewPrimitiveService(name, fullyQualifiedClass, shortClass, mainSpecFile string, referencedSpecFiles ...string) *PrimitiveService {
	p := &PrimitiveService{
		Service:             *NewService(name, mainSpecFile, referencedSpecFiles...),
		Name:                name,
		FullyQualifiedClass: fullyQualifiedClass,
		ShortClass:          shortClass,
		ReadConsistency:     Any,
		WriteConsistency:    Any,
		Partition:           PartitionNone,
		PartitionCount:      1,
		SLA:                 NewSLA(),
	}
	p.Properties.IsPrimitive = boolPtr(true)
	return p
}

// fail shadows Service.fail so every PrimitiveService builder method
// keeps returning *PrimitiveService rather than the embedded *Service.
func (p *PrimitiveService) fail(err error) *PrimitiveService {
	if p.err == nil {
		p.err = err
	}
	return p
}

// Replicate marks the service as replicated across [minDegree,
// maxDegree] replicas, defaulting both read and write consistency to
// Any. minDegree must not exceed maxDegree.
func (p *PrimitiveService) Replicate(minDegree, maxDegree int) *PrimitiveService {
	return p.ReplicateWithConsistency(minDegree, maxDegree, Any, Any)
}

// ReplicateWithConsistency is Replicate with explicit read/write
// consistency levels.
func (p *PrimitiveService) ReplicateWithConsistency(minDegree, maxDegree int, readLvl, writeLvl ConsistencyLevel) *PrimitiveService {
	if minDegree > maxDegree {
		return p.fail(fmt.Errorf("service %q: replica minDegree %d exceeds maxDegree %d", p.Name, minDegree, maxDegree))
	}
	p.ReplicaMinDegree, p.ReplicaMaxDegree = minDegree, maxDegree
	p.ReadConsistency, p.WriteConsistency = readLvl, writeLvl
	p.Properties.IsReplicated = boolPtr(maxDegree > 1)
	return p
}

// Partitioned sets the partitioning key type, defaulting kind to
// PartitionDynamic and count to 1.
func (p *PrimitiveService) Partitioned(keyType types.Type) *PrimitiveService {
	return p.PartitionedWithKind(keyType, PartitionDynamic, 1)
}

// PartitionedWithKind is Partitioned with an explicit partition kind and
// count. count must be >= 1 for PartitionFixed and PartitionDynamic; for
// PartitionNone it is stored as given without validation.
func (p *PrimitiveService) PartitionedWithKind(keyType types.Type, kind PartitionKind, count int) *PrimitiveService {
	if kind != PartitionNone && count < 1 {
		return p.fail(fmt.Errorf("service %q: partition count %d must be >= 1 for partition kind %s", p.Name, count, kind))
	}
	p.PartitionKeyType = keyType
	p.Partition = kind
	p.PartitionCount = count
	p.Properties.IsPartitioned = boolPtr(kind != PartitionNone)
	return p
}

// DataSource attaches the backing data source URI.
func (p *PrimitiveService) DataSource(uri string) *PrimitiveService {
	p.DataSourceURI = uri
	return p
}

// Configuration attaches the configuration URI.
func (p *PrimitiveService) Configuration(uri string) *PrimitiveService {
	p.ConfigurationURI = uri
	return p
}

// MetricTag is a closed SLA objective name.
type MetricTag int

const (
	Latency99Percentile MetricTag = iota
	Latency95Percentile
	Latency90Percentile
	Latency50Percentile
	WorkflowConsistencyMetric
)

func (t MetricTag) String() string {
	switch t {
	case Latency99Percentile:
		return "latency-p99"
	case Latency95Percentile:
		return "latency-p95"
	case Latency90Percentile:
		return "latency-p90"
	case Latency50Percentile:
		return "latency-p50"
	case WorkflowConsistencyMetric:
		return "workflow-consistency"
	default:
		return "unknown-metric"
	}
}

// WorkflowConsistencyLevel is the closed set of values an SLA's
// WorkflowConsistencyMetric objective may be set to.
type WorkflowConsistencyLevel int

const (
	WorkflowAny WorkflowConsistencyLevel = iota
	WorkflowAtomic
	WorkflowAcid
)

func (w WorkflowConsistencyLevel) String() string {
	switch w {
	case WorkflowAtomic:
		return "atomic"
	case WorkflowAcid:
		return "acid"
	default:
		return "any"
	}
}

// SLA is a small ordered set of named service-level objectives, keyed by
// MetricTag. Values are stored as strings because objectives are
// compared and rendered, never computed over, by this package.
type SLA struct {
	entries map[MetricTag]string
	order   []MetricTag
}

// NewSLA creates an empty SLA.
func NewSLA() *SLA {
	return &SLA{entries: map[MetricTag]string{}}
}

// Add sets objective tag to value (stringified via fmt.Sprint),
// fluently. A repeated tag overwrites its value in place without
// disturbing iteration order.
func (s *SLA) Add(tag MetricTag, value interface{}) *SLA {
	if _, exists := s.entries[tag]; !exists {
		s.order = append(s.order, tag)
	}
	s.entries[tag] = fmt.Sprint(value)
	return s
}

// Get returns the stringified value for tag and whether it was set.
func (s *SLA) Get(tag MetricTag) (string, bool) {
	v, ok := s.entries[tag]
	return v, ok
}

// Names returns the SLA's objective tags in insertion order.
func (s *SLA) Names() []MetricTag {
	out := make([]MetricTag, len(s.order))
	copy(out, s.order)
	return out
}
