package winterm

// ansiModules lists console-hooking DLLs known to provide their own ANSI
// escape translation (ConEmu, ANSICON). When one is loaded into the process,
// the built-in translation stays out of its way.
var ansiModules = []string{
	"conemuhk.dll",
	"conemuhk64.dll",
	"ansi.dll",
	"ansi32.dll",
	"ansi64.dll",
}

// detectANSIHook probes the loaded modules once per session and reports
// whether a third-party ANSI translator is present. The probe never fails
// the session: an unanswerable lookup simply counts as absent.
func (t *Terminal) detectANSIHook() bool {
	for _, name := range ansiModules {
		if t.console.HasModule(name) {
			t.logger.Logf("winterm: disabling ANSI translation, found %q", name)
			return true
		}
	}
	return false
}
