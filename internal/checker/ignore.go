package checker

// builtinIgnore holds member names owned by language runtimes and standard
// libraries. The workspace never declares them, so checking them against the
// workspace pool would flag every `list.append` and `promise.then` in the
// tree. Config `ignore` extends this set per project.
var builtinIgnore = map[string]bool{
	// collections, shared across runtimes
	"length": true, "len": true, "size": true, "count": true,
	"append": true, "push": true, "pop": true, "shift": true, "unshift": true,
	"insert": true, "remove": true, "clear": true, "extend": true,
	"slice": true, "splice": true, "concat": true, "join": true, "split": true,
	"map": true, "filter": true, "reduce": true, "forEach": true, "find": true,
	"sort": true, "sorted": true, "reverse": true, "includes": true,
	"indexOf": true, "contains": true,
	"keys": true, "values": true, "items": true, "entries": true,
	"get": true, "set": true, "has": true, "add": true, "delete": true,
	"update": true, "copy": true,
	// strings
	"strip": true, "trim": true, "replace": true, "format": true,
	"startswith": true, "endswith": true, "startsWith": true, "endsWith": true,
	"toLowerCase": true, "toUpperCase": true, "lower": true, "upper": true,
	"charAt": true, "substring": true, "encode": true, "decode": true,
	// async and invocation plumbing
	"then": true, "catch": true, "finally": true, "call": true, "apply": true,
	"bind": true, "next": true, "done": true, "resolve": true, "reject": true,
	// object protocol
	"toString": true, "valueOf": true, "hasOwnProperty": true,
	"constructor": true, "prototype": true, "__init__": true,
	"parse": true, "stringify": true, "freeze": true, "assign": true,
	// I/O and logging
	"open": true, "close": true, "read": true, "write": true, "flush": true,
	"log": true, "error": true, "warn": true, "info": true, "debug": true,
	// Go method conventions
	"Error": true, "String": true, "Close": true, "Read": true, "Write": true,
}
