package dsi

// macroTrie is a byte trie over every dictionary macro, built once at
// package init and only read afterwards.
type macroTrie struct {
	root *trieNode
}

type trieNode struct {
	children map[byte]*trieNode
	entry    *Entry
}

func newMacroTrie(groups ...[]Entry) *macroTrie {
	t := &macroTrie{root: &trieNode{}}
	// Later groups overwrite earlier ones on identical keys.
	for _, group := range groups {
		for i := range group {
			t.insert(group[i])
		}
	}
	return t
}

func (t *macroTrie) insert(e Entry) {
	n := t.root
	for i := 0; i < len(e.Macro); i++ {
		c := e.Macro[i]
		if n.children == nil {
			n.children = make(map[byte]*trieNode)
		}
		next, ok := n.children[c]
		if !ok {
			next = &trieNode{}
			n.children[c] = next
		}
		n = next
	}
	entry := e
	n.entry = &entry
}

// longestMatch returns the longest macro starting at s[0] and its length.
func (t *macroTrie) longestMatch(s string) (*Entry, int) {
	var (
		best    *Entry
		bestLen int
	)
	n := t.root
	for i := 0; i < len(s); i++ {
		next, ok := n.children[s[i]]
		if !ok {
			break
		}
		n = next
		if n.entry != nil {
			best = n.entry
			bestLen = i + 1
		}
	}
	return best, bestLen
}

var macros = newMacroTrie(binaryPrefixEntries, prefixEntries, baseUnitEntries)
