// Package diag defines the diagnostic model shared by the lexer, the green tree
// and every consumer of a PDF syntax tree.
//
// # Data model
//
//   - Code – compact numeric identifier rendered as a stable `PDF0000` ID.
//   - Info – (Code, effective Severity, Arguments). The default severity and the
//     message text come from a MessageProvider; Info never embeds text.
//     Infos compare and hash structurally over (Code, Arguments), so two
//     independently produced identical diagnostics are equal.
//   - Location – closed variant: NoLocation, SourceLocation (tree + span) or
//     ExternalLocation (path + span + line span).
//   - Diagnostic – Info placed at a Location; renders as
//     `<severity> <ID>: <message>`.
//
// Lexical and syntactic problems are data: they are attached to green nodes
// (see internal/green) and collected on demand through the red facade. Only
// producers outside the tree (I/O, the driver) report through Reporter/Bag.
//
// Message rendering may legitimately fail to find text for a code or a
// language; code, severity, location and arguments stay available and the
// message falls back to the empty string.
package diag
