package agent

import (
	"fmt"
	"strings"
)

// buildAnalysisPrompt creates the Analyzer prompt.
func buildAnalysisPrompt(jobDescription string) (prompt string) {
	prompt = fmt.Sprintf(`You are an expert Talent Acquisition Specialist. Your goal is to extract the critical signal from a job description so a candidate can tailor their resume perfectly.

Analyze the provided job description and output the following analysis:
1. CORE SKILLS: The top 3-5 hard skills absolutely required.
2. ATS KEYWORDS: Specific terminology, tools, or buzzwords the ATS (Applicant Tracking System) will search for.
3. HIDDEN NEEDS: What is the underlying problem they are hiring to solve? (e.g., 'scaling legacy systems', 'building a team from scratch').
4. CULTURE VIBE: The tone of the company (e.g., 'fast-paced startup', 'structured corporate', 'academic/research').

Keep your analysis concise and actionable.

JOB DESCRIPTION:
%s`, jobDescription)

	return prompt
}

// buildStrategyPrompt creates the Strategist prompt.
func buildStrategyPrompt(analysis, experience, customInstructions string) (prompt string) {
	instructionsSection := ""
	if strings.TrimSpace(customInstructions) != "" {
		instructionsSection = fmt.Sprintf(`

ADDITIONAL INSTRUCTIONS FROM THE CANDIDATE:
%s`, customInstructions)
	}

	prompt = fmt.Sprintf(`You are a Senior Career Coach and Resume Strategist. Your goal is to create a content strategy that bridges a candidate's experience with a target job.

You will be given:
1. A Job Analysis (containing core skills, keywords, and hidden needs)
2. The Candidate's Experience

Create a detailed plan for how to write the resume. Do NOT write the final resume. Instead, write a strategy document that includes:
1. SUMMARY STRATEGY: What 2-3 key strengths should be highlighted in the professional summary?
2. EXPERIENCE SELECTION: Which specific roles or projects from the candidate's history are most relevant? Which ones should be minimized?
3. BULLET POINT ANGLES: For the top relevant roles, explain how to frame the achievements to match the Job Analysis.
4. KEYWORD INTEGRATION: List specific keywords from the analysis that must be naturally woven into the bullet points.

Be specific and tactical.

JOB ANALYSIS:
%s

CANDIDATE EXPERIENCE:
%s%s`, analysis, experience, instructionsSection)

	return prompt
}

// buildDraftPrompt creates the Drafter prompt. On retries the previous
// validation issues are listed verbatim so the model can fix them.
func buildDraftPrompt(req DraftRequest) (prompt string) {
	mode := Creativity(req.Creativity)

	errorSection := ""
	if len(req.PreviousErrors) > 0 {
		lines := make([]string, 0, len(req.PreviousErrors))
		for _, issue := range req.PreviousErrors {
			lines = append(lines, "- "+issue)
		}
		errorSection = fmt.Sprintf(`

ERRORS FROM YOUR PREVIOUS ATTEMPT:
Your previous draft had the following structural problems. Fix every one of them this time:
%s`, strings.Join(lines, "\n"))
	}

	prompt = fmt.Sprintf(`You are an expert LaTeX Developer and Resume Writer. Your goal is to execute a resume rewrite based on a specific strategy and style template.

CRITICAL RULES:
- Output ONLY the document BODY: the content that goes between \begin{document} and \end{document}.
- Do NOT output \documentclass, the preamble, \begin{document}, or \end{document} - those are fixed.
- Do NOT output markdown formatting (like %s).
- Do NOT include any intro or outro text.
- Use ONLY the custom commands listed in the command cheatsheet plus standard LaTeX.
- Follow the structure of the sample body exactly.
- Implement the strategy plan implicitly in the content you write.
- Ensure every brace and environment is balanced so the result compiles perfectly.

MODE (%s): %s

JOB ANALYSIS:
%s

STRATEGY PLAN:
%s

SAMPLE BODY (structure to follow):
%s

COMMAND CHEATSHEET:
%s

CANDIDATE RAW EXPERIENCE:
%s%s

Generate the final resume body now.`,
		"```latex",
		mode.Name, mode.Description,
		req.Analysis, req.Strategy, req.TemplateBody,
		req.CommandCheatsheet, req.Experience, errorSection)

	return prompt
}
