package chart

import "bytes"

// dumpChart traces the chart's current contents at Debug level, one entry
// per line.
func dumpChart(chartList []*Entry) {
	tracer().Debugf("--- chart (%d entries) ------------------------------------", len(chartList))
	for i, e := range chartList {
		tracer().Debugf("[%3d] %s", i, e)
	}
}

// entrySetString renders entries as a compact one-line set, for trace
// and error messages.
func entrySetString(entries []*Entry) string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, e := range entries {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString(" }")
	return b.String()
}
