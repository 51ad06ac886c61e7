package document

// Upstream dc:type strings observed in SRU responses. Periodicals appear in
// two shapes: the collection-level record and, with collapsing disabled, one
// record per issue ("fascicule").
var upstreamKinds = map[string]Kind{
	"monographie": KindMonograph,
	"périodique":  KindPeriodicalCollection,
	"fascicule":   KindPeriodicalIssue,
	"manuscrit":   KindManuscript,
	"image":       KindImage,
	"carte":       KindMap,
	"partition":   KindScore,
}

// KindFromUpstream maps an upstream type string to a Kind.
// Unknown strings map to KindOther; they never fail normalization.
func KindFromUpstream(raw string) Kind {
	if k, ok := upstreamKinds[raw]; ok {
		return k
	}
	return KindOther
}
