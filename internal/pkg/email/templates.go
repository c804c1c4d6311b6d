package email

// Email templates in HTML format

// BaseTemplate is the base layout for all emails
const BaseTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background-color: #0f0f0f;
            color: #ffffff;
        }
        .container {
            max-width: 600px;
            margin: 0 auto;
            padding: 40px 20px;
        }
        .card {
            background: #1a1a1a;
            border-radius: 12px;
            padding: 32px;
            border: 1px solid #2a2a2a;
        }
        .logo {
            text-align: center;
            margin-bottom: 24px;
        }
        .logo h1 {
            font-size: 28px;
            background: linear-gradient(135deg, #f97316 0%, #ef4444 100%);
            -webkit-background-clip: text;
            -webkit-text-fill-color: transparent;
            margin: 0;
        }
        h2 {
            color: #ffffff;
            font-size: 24px;
            margin: 0 0 16px;
        }
        p {
            color: #888888;
            font-size: 16px;
            line-height: 1.6;
            margin: 0 0 16px;
        }
        .btn {
            display: inline-block;
            background: linear-gradient(135deg, #f97316 0%, #ef4444 100%);
            color: #ffffff !important;
            text-decoration: none;
            padding: 14px 28px;
            border-radius: 8px;
            font-weight: 600;
            font-size: 16px;
            margin: 16px 0;
        }
        .footer {
            text-align: center;
            margin-top: 32px;
            color: #666666;
            font-size: 12px;
        }
        .highlight {
            color: #f97316;
            font-weight: 600;
        }
        .info-box {
            background: #252525;
            border-radius: 8px;
            padding: 16px;
            margin: 16px 0;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <div class="logo">
                <h1>MX70</h1>
            </div>
            {{.Content}}
        </div>
        <div class="footer">
            <p>© 2026 MX70. All rights reserved.</p>
            <p>You received this email because you have an account on mx70.io</p>
        </div>
    </div>
</body>
</html>
`

// WelcomeTemplate - welcome email for new users
const WelcomeTemplate = `
<h2>Welcome to MX70! 🎉</h2>
<p>Hi, <span class="highlight">{{.UserName}}</span>!</p>
<p>Your account is ready. MX70 connects local businesses with video clippers who turn raw footage into clips that perform.</p>
{{if eq .Role "clipper"}}
<p>What's next?</p>
<ul>
    <li>Complete the lessons and earn your basic certification</li>
    <li>Browse open gigs and claim one</li>
    <li>Earn base pay plus performance bonuses</li>
</ul>
{{else}}
<p>What's next?</p>
<ul>
    <li>Post your first gig and earn platform credits</li>
    <li>Upload raw footage for clippers to work with</li>
    <li>Track clip performance on your dashboard</li>
</ul>
{{end}}
<a href="{{.DashboardURL}}" class="btn">Go to your dashboard</a>
`

// GigClaimedTemplate - notification for business when a clipper claims their gig
const GigClaimedTemplate = `
<h2>🎬 Your gig was claimed</h2>
<p>A clipper has claimed your gig <strong>"{{.GigTitle}}"</strong> and is starting work on it.</p>
<div class="info-box">
    <p><strong>Budget:</strong> ${{.Budget}}</p>
</div>
<p>You'll be notified when the edited clip is submitted.</p>
<a href="{{.GigURL}}" class="btn">View gig</a>
`

// SubmissionApprovedTemplate - notification for clipper when their work is approved
const SubmissionApprovedTemplate = `
<h2>✅ Your submission was approved</h2>
<p>Great work! Your clip for <strong>"{{.GigTitle}}"</strong> has been approved.</p>
<div class="info-box">
    <p><strong>Performance bonus:</strong> ${{.Bonus}}</p>
</div>
<p>Your payout is being processed.</p>
<a href="{{.SubmissionURL}}" class="btn">View submission</a>
`

// CreditAwardedTemplate - notification when a platform credit lands
const CreditAwardedTemplate = `
<h2>💰 Credit earned</h2>
<p>You earned <span class="highlight">${{.Amount}}</span> in platform credit.</p>
<div class="info-box">
    <p><strong>Reason:</strong> {{.Reason}}</p>
    <p><strong>Expires:</strong> {{.Expiry}}</p>
</div>
<a href="{{.DashboardURL}}" class="btn">View balance</a>
`
