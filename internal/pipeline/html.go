package pipeline

// HTML converts the small set of HTML tags and entities TWiki pages embed.
// Entities are decoded with &amp; last, so "&amp;lt;" becomes "&lt;".
var HTML = Stage{
	Name: "html",
	Rules: []Rule{
		pattern("break", `<br ?/?>`, "\n"),
		pattern("em", `</?em>`, "''"),
		pattern("strong", `</?strong>`, "'''"),
		pattern("lt", `&lt;`, "<"),
		pattern("gt", `&gt;`, ">"),
		pattern("amp", `&amp;`, "&"),
		pattern("paragraph", `(?s)<p>(.*?)</p>`, "${1}<<BR>>"),
		pattern("pre", `\B<pre>\b([^*\n]*?)</pre>\B`, "`${1}`"),
		pattern("pre-block", `\B<pre>\b([^*]*?)</pre>\B`, "{{{\n${1}}}}\n"),
	},
}
