package provision

import (
	"fmt"
	"strings"
)

// NextSteps renders the literal, ordered list of manual follow-ups printed
// after a successful run. The tool only instructs — it never executes these.
func NextSteps(envFile, venvDir string) string {
	var b strings.Builder
	b.WriteString("\nProvisioning complete. Next steps:\n")
	fmt.Fprintf(&b, "  1. Create %s with your entitlement key (if you have not already):\n", envFile)
	b.WriteString("       WO_ENTITLEMENT_KEY=<your key>          (required)\n")
	b.WriteString("       WATSONX_APIKEY=<your watsonx API key>  (optional)\n")
	b.WriteString("       WO_SPACE_ID=<your space ID>            (optional)\n")
	b.WriteString("       WO_HEALTH_TIMEOUT=<seconds>            (optional)\n")
	fmt.Fprintf(&b, "  2. Activate the environment: source %s/bin/activate\n", venvDir)
	fmt.Fprintf(&b, "  3. Start the server: orchestrate server start -e %s\n", envFile)
	return b.String()
}
