package skin

import "strings"

// BonePair maps a source bone to the bone receiving its mirrored weights.
type BonePair struct {
	Source string
	Target string
}

func (p BonePair) String() string {
	return p.Source + " -> " + p.Target
}

// FindPairs pairs every bone named <stem><sourceSuffix> with the bone <stem><targetSuffix>.
// Pairs are returned in bone order. An empty sourceSuffix makes every bone a source;
// callers are expected to reject that configuration.
func FindPairs(boneNames []string, sourceSuffix, targetSuffix string) []BonePair {
	pairs, _ := matchBones(boneNames, sourceSuffix, targetSuffix)
	return pairs
}

// UnmatchedBones returns bones ending with sourceSuffix whose counterpart does not exist.
func UnmatchedBones(boneNames []string, sourceSuffix, targetSuffix string) []string {
	_, unmatched := matchBones(boneNames, sourceSuffix, targetSuffix)
	return unmatched
}

func matchBones(boneNames []string, sourceSuffix, targetSuffix string) ([]BonePair, []string) {
	exists := make(map[string]bool, len(boneNames))
	for _, name := range boneNames {
		exists[name] = true
	}

	var pairs []BonePair
	var unmatched []string
	done := map[string]bool{}
	for _, name := range boneNames {
		if done[name] || !strings.HasSuffix(name, sourceSuffix) {
			continue
		}
		done[name] = true
		target := strings.TrimSuffix(name, sourceSuffix) + targetSuffix
		if exists[target] {
			pairs = append(pairs, BonePair{Source: name, Target: target})
		} else {
			unmatched = append(unmatched, name)
		}
	}
	return pairs, unmatched
}
