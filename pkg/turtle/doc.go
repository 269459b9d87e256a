// Package turtle interprets symbol sequences as turtle-graphics commands.
//
// Each symbol is bound to an [Action] through an [ActionTable]: move forward
// (drawing a line), turn, push the current pose, pop a saved pose, or do
// nothing. Unknown symbols are Idle.
//
// Interpretation is a pure function of (commands, prefix length): [Walk]
// always starts from a fresh pen and an empty [PoseStack], so an animation
// that reveals the path symbol by symbol simply replays a longer prefix each
// frame. Segments are emitted in order, which makes the output for a prefix
// a prefix of the output for any longer one.
//
// Popping an empty stack is tolerated by default because hand-written
// grammars often end with a stray bracket; set [Options.StrictPop] to reject
// it instead.
package turtle
