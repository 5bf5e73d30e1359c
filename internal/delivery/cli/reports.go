package cli

import "fmt"

func (h *handlerImpl) generateReports() error {
	_, _, err := h.reports.Generate()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate reports")
		h.println("Failed to generate reports. Please try again.")
		return nil
	}

	h.println("Reports generated.")
	return nil
}

func (h *handlerImpl) displayStatistics() error {
	taskDoc, userDoc, err := h.reports.ReadCached()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to read reports")
		h.println("Failed to read reports. Please try again.")
		return nil
	}

	fmt.Fprintf(h.out, "Task Overview:\n%s\n", taskDoc)
	fmt.Fprintf(h.out, "User Overview:\n%s\n", userDoc)
	return nil
}
