// Package schema holds the static tag schema table the Page Parser consults
// to decide how many arguments a token takes, how to interpret them, and
// whether a subtag block follows (spec.md §3.1 SchemaEntry, §4.3.3).
package schema

import "github.com/tpzdecode/topaz"

// Entry is the 4-tuple a dotted tag path maps to: how many scalar-argument
// slots to consume, how to interpret them, whether a subtag block follows,
// and whether that subtag block is gated behind the 0x74 escape marker.
type Entry struct {
	NumArgs   int
	ArgType   topaz.ArgType
	HasSubtags bool
	// EscapedSubtags marks a tag whose subtag block is present only when the
	// next stream byte is the 0x74 escape marker (spec.md §3.1
	// special_subtag_escape, §4.3.3 step 1).
	EscapedSubtags bool
}

// table is transcribed from the original decoder's token_tags map. A Go map
// literal cannot hold a duplicate key, so the harmless duplicated
// 'paragraph.lastWord' entry documented in spec.md §9 naturally collapses to
// one — first-wins was already the observed behavior.
var table = map[string]Entry{
	"x":         {1, topaz.ArgScalarNumber, false, false},
	"y":         {1, topaz.ArgScalarNumber, false, false},
	"h":         {1, topaz.ArgScalarNumber, false, false},
	"w":         {1, topaz.ArgScalarNumber, false, false},
	"firstWord": {1, topaz.ArgScalarNumber, false, false},
	"lastWord":  {1, topaz.ArgScalarNumber, false, false},
	"rootID":    {1, topaz.ArgScalarNumber, false, false},
	"stemID":    {1, topaz.ArgScalarNumber, false, false},
	"type":      {1, topaz.ArgScalarText, false, false},

	"info": {0, topaz.ArgNumberType, true, false},

	"info.word":             {0, topaz.ArgNumberType, true, true},
	"info.word.ocrText":     {1, topaz.ArgTextType, false, false},
	"info.word.firstGlyph":  {1, topaz.ArgRaw, false, false},
	"info.word.lastGlyph":   {1, topaz.ArgRaw, false, false},
	"info.word.bl":          {1, topaz.ArgRaw, false, false},
	"info.word.link_id":     {1, topaz.ArgNumberType, false, false},

	"glyph":         {0, topaz.ArgNumberType, true, true},
	"glyph.x":       {1, topaz.ArgNumberType, false, false},
	"glyph.y":       {1, topaz.ArgNumberType, false, false},
	"glyph.glyphID": {1, topaz.ArgNumberType, false, false},
	"glyph.h":       {1, topaz.ArgNumberType, false, false},
	"glyph.w":       {1, topaz.ArgNumberType, false, false},
	"glyph.use":     {1, topaz.ArgNumberType, false, false},
	"glyph.vtx":     {1, topaz.ArgNumberType, false, true},
	"glyph.len":     {1, topaz.ArgNumberType, false, true},
	"glyph.dpi":     {1, topaz.ArgNumberType, false, false},

	"dehyphen":          {0, topaz.ArgNumberType, true, true},
	"dehyphen.rootID":   {1, topaz.ArgNumberType, false, false},
	"dehyphen.stemID":   {1, topaz.ArgNumberType, false, false},
	"dehyphen.stemPage": {1, topaz.ArgNumberType, false, false},
	"dehyphen.sh":       {1, topaz.ArgNumberType, false, false},

	"links":       {0, topaz.ArgNumberType, true, true},
	"links.page":  {1, topaz.ArgNumberType, false, false},
	"links.rel":   {1, topaz.ArgNumberType, false, false},
	"links.row":   {1, topaz.ArgNumberType, false, false},
	"links.title": {1, topaz.ArgTextType, false, false},
	"links.href":  {1, topaz.ArgTextType, false, false},
	"links.type":  {1, topaz.ArgTextType, false, false},
	"links.id":    {1, topaz.ArgNumberType, false, false},

	"paraCont":          {0, topaz.ArgNumberType, true, true},
	"paraCont.rootID":   {1, topaz.ArgNumberType, false, false},
	"paraCont.stemID":   {1, topaz.ArgNumberType, false, false},
	"paraCont.stemPage": {1, topaz.ArgNumberType, false, false},

	"paraStems":        {0, topaz.ArgNumberType, true, true},
	"paraStems.stemID": {1, topaz.ArgNumberType, false, false},

	"wordStems":        {0, topaz.ArgNumberType, true, true},
	"wordStems.stemID": {1, topaz.ArgNumberType, false, false},

	"empty": {1, topaz.ArgSnippets, true, false},

	"page":           {1, topaz.ArgSnippets, true, false},
	"page.class":     {1, topaz.ArgScalarText, false, false},
	"page.pageid":    {1, topaz.ArgScalarText, false, false},
	"page.pagelabel": {1, topaz.ArgScalarText, false, false},
	"page.type":      {1, topaz.ArgScalarText, false, false},
	"page.h":         {1, topaz.ArgScalarNumber, false, false},
	"page.w":         {1, topaz.ArgScalarNumber, false, false},
	"page.startID":   {1, topaz.ArgScalarNumber, false, false},

	"group":             {1, topaz.ArgSnippets, true, false},
	"group.class":       {1, topaz.ArgScalarText, false, false},
	"group.type":        {1, topaz.ArgScalarText, false, false},
	"group._tag":        {1, topaz.ArgScalarText, false, false},
	"group.orientation": {1, topaz.ArgScalarText, false, false},

	"region":             {1, topaz.ArgSnippets, true, false},
	"region.class":       {1, topaz.ArgScalarText, false, false},
	"region.type":        {1, topaz.ArgScalarText, false, false},
	"region.x":           {1, topaz.ArgScalarNumber, false, false},
	"region.y":           {1, topaz.ArgScalarNumber, false, false},
	"region.h":           {1, topaz.ArgScalarNumber, false, false},
	"region.w":           {1, topaz.ArgScalarNumber, false, false},
	"region.orientation": {1, topaz.ArgScalarText, false, false},

	"empty_text_region": {1, topaz.ArgSnippets, true, false},

	"img":           {1, topaz.ArgSnippets, true, false},
	"img.x":         {1, topaz.ArgScalarNumber, false, false},
	"img.y":         {1, topaz.ArgScalarNumber, false, false},
	"img.h":         {1, topaz.ArgScalarNumber, false, false},
	"img.w":         {1, topaz.ArgScalarNumber, false, false},
	"img.src":       {1, topaz.ArgScalarNumber, false, false},
	"img.color_src": {1, topaz.ArgScalarNumber, false, false},

	"paragraph":                   {1, topaz.ArgSnippets, true, false},
	"paragraph.class":             {1, topaz.ArgScalarText, false, false},
	"paragraph.firstWord":         {1, topaz.ArgScalarNumber, false, false},
	"paragraph.lastWord":          {1, topaz.ArgScalarNumber, false, false},
	"paragraph.gridSize":          {1, topaz.ArgScalarNumber, false, false},
	"paragraph.gridBottomCenter":  {1, topaz.ArgScalarNumber, false, false},
	"paragraph.gridTopCenter":     {1, topaz.ArgScalarNumber, false, false},
	"paragraph.gridBeginCenter":   {1, topaz.ArgScalarNumber, false, false},
	"paragraph.gridEndCenter":     {1, topaz.ArgScalarNumber, false, false},

	"word_semantic":           {1, topaz.ArgSnippets, true, true},
	"word_semantic.type":      {1, topaz.ArgScalarText, false, false},
	"word_semantic.class":     {1, topaz.ArgScalarText, false, false},
	"word_semantic.firstWord": {1, topaz.ArgScalarNumber, false, false},
	"word_semantic.lastWord":  {1, topaz.ArgScalarNumber, false, false},

	"word":            {1, topaz.ArgSnippets, true, false},
	"word.type":       {1, topaz.ArgScalarText, false, false},
	"word.class":      {1, topaz.ArgScalarText, false, false},
	"word.firstGlyph": {1, topaz.ArgScalarNumber, false, false},
	"word.lastGlyph":  {1, topaz.ArgScalarNumber, false, false},

	"_span":                  {1, topaz.ArgSnippets, true, false},
	"_span.class":            {1, topaz.ArgScalarText, false, false},
	"_span.firstWord":        {1, topaz.ArgScalarNumber, false, false},
	"_span.lastWord":         {1, topaz.ArgScalarNumber, false, false},
	"_span.gridSize":         {1, topaz.ArgScalarNumber, false, false},
	"_span.gridBottomCenter": {1, topaz.ArgScalarNumber, false, false},
	"_span.gridTopCenter":    {1, topaz.ArgScalarNumber, false, false},
	"_span.gridBeginCenter":  {1, topaz.ArgScalarNumber, false, false},
	"_span.gridEndCenter":    {1, topaz.ArgScalarNumber, false, false},

	"span":                  {1, topaz.ArgSnippets, true, false},
	"span.firstWord":        {1, topaz.ArgScalarNumber, false, false},
	"span.lastWord":         {1, topaz.ArgScalarNumber, false, false},
	"span.gridSize":         {1, topaz.ArgScalarNumber, false, false},
	"span.gridBottomCenter": {1, topaz.ArgScalarNumber, false, false},
	"span.gridTopCenter":    {1, topaz.ArgScalarNumber, false, false},
	"span.gridBeginCenter":  {1, topaz.ArgScalarNumber, false, false},
	"span.gridEndCenter":    {1, topaz.ArgScalarNumber, false, false},

	"extratokens":            {1, topaz.ArgSnippets, true, false},
	"extratokens.type":       {1, topaz.ArgScalarText, false, false},
	"extratokens.firstGlyph": {1, topaz.ArgScalarNumber, false, false},
	"extratokens.lastGlyph":  {1, topaz.ArgScalarNumber, false, false},

	"vtx":   {0, topaz.ArgNumberType, true, true},
	"vtx.x": {1, topaz.ArgNumberType, false, false},
	"vtx.y": {1, topaz.ArgNumberType, false, false},
	"len":   {0, topaz.ArgNumberType, true, true},
	"len.n": {1, topaz.ArgNumberType, false, false},

	"book":                               {1, topaz.ArgSnippets, true, false},
	"version":                            {1, topaz.ArgSnippets, true, false},
	"version.FlowEdit_1_id":              {1, topaz.ArgScalarText, false, false},
	"version.FlowEdit_1_version":         {1, topaz.ArgScalarText, false, false},
	"version.Schema_id":                  {1, topaz.ArgScalarText, false, false},
	"version.Schema_version":             {1, topaz.ArgScalarText, false, false},
	"version.Topaz_version":              {1, topaz.ArgScalarText, false, false},
	"version.WordDetailEdit_1_id":        {1, topaz.ArgScalarText, false, false},
	"version.WordDetailEdit_1_version":   {1, topaz.ArgScalarText, false, false},
	"version.ZoneEdit_1_id":              {1, topaz.ArgScalarText, false, false},
	"version.ZoneEdit_1_version":         {1, topaz.ArgScalarText, false, false},
	"version.chapterheaders":             {1, topaz.ArgScalarText, false, false},
	"version.creation_date":              {1, topaz.ArgScalarText, false, false},
	"version.header_footer":              {1, topaz.ArgScalarText, false, false},
	"version.init_from_ocr":              {1, topaz.ArgScalarText, false, false},
	"version.letter_insertion":           {1, topaz.ArgScalarText, false, false},
	"version.xmlinj_convert":             {1, topaz.ArgScalarText, false, false},
	"version.xmlinj_reflow":              {1, topaz.ArgScalarText, false, false},
	"version.xmlinj_transform":           {1, topaz.ArgScalarText, false, false},
	"version.findlists":                  {1, topaz.ArgScalarText, false, false},
	"version.page_num":                   {1, topaz.ArgScalarText, false, false},
	"version.page_type":                  {1, topaz.ArgScalarText, false, false},
	"version.bad_text":                   {1, topaz.ArgScalarText, false, false},
	"version.glyph_mismatch":             {1, topaz.ArgScalarText, false, false},
	"version.margins":                    {1, topaz.ArgScalarText, false, false},
	"version.staggered_lines":            {1, topaz.ArgScalarText, false, false},
	"version.paragraph_continuation":     {1, topaz.ArgScalarText, false, false},
	"version.toc":                        {1, topaz.ArgScalarText, false, false},

	"stylesheet":                {1, topaz.ArgSnippets, true, false},
	"style":                     {1, topaz.ArgSnippets, true, false},
	"style._tag":                {1, topaz.ArgScalarText, false, false},
	"style.type":                {1, topaz.ArgScalarText, false, false},
	"style._after_type":         {1, topaz.ArgScalarText, false, false},
	"style._parent_type":        {1, topaz.ArgScalarText, false, false},
	"style._after_parent_type":  {1, topaz.ArgScalarText, false, false},
	"style.class":               {1, topaz.ArgScalarText, false, false},
	"style._after_class":        {1, topaz.ArgScalarText, false, false},
	"rule":                      {1, topaz.ArgSnippets, true, false},
	"rule.attr":                 {1, topaz.ArgScalarText, false, false},
	"rule.value":                {1, topaz.ArgScalarText, false, false},

	"original":      {0, topaz.ArgNumberType, true, true},
	"original.pnum": {1, topaz.ArgNumberType, false, false},
	"original.pid":  {1, topaz.ArgTextType, false, false},
	"pages":         {0, topaz.ArgNumberType, true, true},
	"pages.ref":     {1, topaz.ArgNumberType, false, false},
	"pages.id":      {1, topaz.ArgNumberType, false, false},
	"startID":       {0, topaz.ArgNumberType, true, true},
	"startID.page":  {1, topaz.ArgNumberType, false, false},
	"startID.id":    {1, topaz.ArgNumberType, false, false},
}

// Resolve implements spec.md §4.3.3's schema lookup rule: scan the current
// dotted tag path at every prefix depth 0..len(path)-1 and return the first
// entry found. Depth i looks up path[i:] joined with dots, so the longest
// path is tried first and the last token alone last. This makes the schema
// sensitive to both short names (e.g. "x") and disambiguated paths (e.g.
// "glyph.x"), with the disambiguated path winning when both match.
//
// path is the full tag-path stack as a slice of tokens (path[0] is the
// outermost ancestor, path[len(path)-1] is the token just pushed).
func Resolve(path []string) (Entry, bool) {
	for i := range path {
		key := joinDotted(path[i:])
		if e, ok := table[key]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

func joinDotted(path []string) string {
	if len(path) == 1 {
		return path[0]
	}
	out := path[0]
	for _, p := range path[1:] {
		out += "." + p
	}
	return out
}

// Len returns the number of distinct schema entries, used by tests that want
// to sanity-check the table was transcribed in full.
func Len() int {
	return len(table)
}
