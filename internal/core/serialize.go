package core

// SerializeResultJS converts the value left in __fn_result by the engine
// into JSON text, evaluated inside the sandbox after the user program ran.
// An undefined completion value serializes as null. Function values and
// cyclic structures throw, which the engine reports as a serialization
// failure; JSON.stringify raises on cycles on its own, the replacer covers
// functions (stringify would otherwise drop them silently).
const SerializeResultJS = `
(function() {
	var r = globalThis.__fn_result;
	delete globalThis.__fn_result;
	if (r === undefined) {
		return "null";
	}
	var text = JSON.stringify(r, function(key, value) {
		if (typeof value === "function") {
			throw new TypeError("function values are not serializable");
		}
		return value;
	});
	if (text === undefined) {
		throw new TypeError("value is not serializable");
	}
	return text;
})()
`
