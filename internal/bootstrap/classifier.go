package bootstrap

import (
	"log/slog"

	"github.com/trinamix-ai/documantra-saas/internal/config"
	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/core/ports"
	"github.com/trinamix-ai/documantra-saas/internal/core/usecase"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/ai/oci"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/extractor/pdftext"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/resilience"
)

// NewClassifier wires the one-document pipeline used by the CLI.
func NewClassifier(cfg config.Config, cls config.Classifier, logger *slog.Logger) (*usecase.ClassifyDocumentUseCase, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return newClassifier(cls, newExecutor(cfg, logger), logger)
}

func newClassifier(cls config.Classifier, executor *resilience.Executor, logger *slog.Logger) (*usecase.ClassifyDocumentUseCase, error) {
	var signer oci.RequestSigner
	region := ""
	if cls.OCIAuth == config.OCIAuthAPIKey {
		auth, err := oci.LoadAPIKeyAuth(cls.OCIConfigFile, cls.OCIProfile)
		if err != nil {
			return nil, domain.WrapError(domain.ErrConfig, "load oci credentials", err)
		}
		signer = auth.Signer
		region = auth.Region
	}

	genAIEndpoint, err := resolveEndpoint(cls.GenAIEndpoint, region, oci.GenAIEndpoint, "GENAI_ENDPOINT")
	if err != nil {
		return nil, err
	}

	client := oci.New(oci.NewHTTPClient(signer), executor)
	chat := oci.NewChatClient(client, genAIEndpoint)

	var extraction ports.TextExtractionService
	switch cls.ExtractorBackend {
	case config.ExtractorBackendLocal:
		extraction = pdftext.NewExtractor()
	default:
		documentEndpoint, err := resolveEndpoint(cls.DocumentAIEndpoint, region, oci.DocumentAIEndpoint, "DOCUMENT_AI_ENDPOINT")
		if err != nil {
			return nil, err
		}
		extraction = oci.NewDocumentClient(client, documentEndpoint)
	}

	logger.Debug("classifier_wired",
		"extractor_backend", cls.ExtractorBackend,
		"oci_auth", cls.OCIAuth,
		"region", region,
		"model_id", cls.ModelID,
	)
	return usecase.NewClassifyDocumentUseCase(extraction, chat, cls.Settings(), logger), nil
}

func resolveEndpoint(explicit, region string, fromRegion func(string) string, key string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if region == "" {
		return "", &config.Error{Key: key, Reason: "required when OCI_AUTH=none"}
	}
	return fromRegion(region), nil
}
