package domain

// SafetyInstruction is prepended to every user query.
const SafetyInstruction = "You are a careful, safety-conscious medical assistant. " +
	"Analyze the attached clinical image and answer the user's question in 2-4 sentences. " +
	"Provide: (1) most likely differential diagnosis, (2) immediate next-step advice, " +
	"and (3) a clear medical disclaimer telling the user to consult a professional. " +
	"Do NOT provide prescriptions or dose-specific instructions."

// DefaultQuery is used when the user only provides an image.
const DefaultQuery = "What condition might this be? What are immediate next steps?"

// MedicalDisclaimer is printed after every assessment.
const MedicalDisclaimer = "*** IMPORTANT MEDICAL DISCLAIMER: This tool provides informational suggestions only and is not a " +
	"substitute for professional medical advice, diagnosis, or treatment. Always consult a qualified healthcare " +
	"provider for diagnosis and treatment. ***"

const imageDataURIPrefix = "data:image/jpeg;base64,"

// AssembleMessages builds the multimodal chat document: a single user message with exactly one text block (the
// safety instruction followed by the query) and one image block (the base64-encoded image as a data URI).
func AssembleMessages(userQuery, imageBase64 string) []ChatMessage {
	return []ChatMessage{
		{
			Role: RoleUser,
			Content: []ContentBlock{
				NewTextBlock(SafetyInstruction + "\nUser query: " + userQuery),
				NewImageBlock(ImageDataURI(imageBase64)),
			},
		},
	}
}

// ImageDataURI embeds base64-encoded image bytes into a data URI.
func ImageDataURI(imageBase64 string) string {
	return imageDataURIPrefix + imageBase64
}
